package ingest

import (
	"errors"
	"fmt"
)

// Stage names the pipeline phase a file failed in.
type Stage string

const (
	StageSlot     Stage = "slot"
	StageTransfer Stage = "transfer"
	StageConfirm  Stage = "confirm"
)

// Stage sentinels. A *StageError matches exactly one of them with errors.Is.
var (
	ErrSlotRequest = errors.New("upload slot request failed")
	ErrTransfer    = errors.New("storage transfer failed")
	ErrConfirm     = errors.New("upload confirmation failed")
)

func (s Stage) sentinel() error {
	switch s {
	case StageSlot:
		return ErrSlotRequest
	case StageTransfer:
		return ErrTransfer
	default:
		return ErrConfirm
	}
}

// StageError tags a per-file failure with its file and stage. It unwraps to
// both the stage sentinel and the underlying cause.
type StageError struct {
	Stage Stage
	File  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.File, e.Stage.sentinel(), e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Stage.sentinel(), e.Err}
}
