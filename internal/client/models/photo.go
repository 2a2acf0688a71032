// Package models defines the photodesk domain types shared by the API client,
// the ingestion orchestrator and the CLI.
package models

import "time"

// UploadRequest asks the backend for a write slot for one file.
// It is built once per selected file and never mutated.
type UploadRequest struct {
	EventID     string
	Filename    string
	ContentType string
}

// UploadSlot is a single-use, time-limited presigned write credential.
// ObjectKey is what gets confirmed after the bytes land.
type UploadSlot struct {
	UploadURL string
	ObjectKey string
}

// PhotoRecord is a confirmed photo. It exists only after the backend accepted
// the confirm call for ObjectKey.
type PhotoRecord struct {
	ID         string
	EventID    string
	ObjectKey  string
	PreviewKey string
	URL        string
	CreatedAt  time.Time
}
