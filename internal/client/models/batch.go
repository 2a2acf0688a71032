package models

import "time"

type UploadStatus string

const (
	UploadConfirmed UploadStatus = "confirmed"
	UploadFailed    UploadStatus = "failed"
)

// Batch is one recorded ingest run for an event.
type Batch struct {
	ID        string
	EventID   string
	StartedAt time.Time
	Total     int
	Confirmed int
	Uploads   []BatchUpload
}

// BatchUpload is the journaled outcome of one file. Stage and Reason are set
// only for failures; ObjectKey once a slot was issued.
type BatchUpload struct {
	Position    int
	Path        string
	Filename    string
	ContentType string
	Status      UploadStatus
	Stage       string
	Reason      string
	ObjectKey   string
	PhotoID     string
}

func (b Batch) Failed() int { return b.Total - b.Confirmed }
