package ingest

import (
	"fmt"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// Result is the outcome for one file: exactly one of Photo (confirmed) or
// Err (failed) is set. ObjectKey is the slot's key once one was issued.
type Result struct {
	File      LocalFile
	ObjectKey string
	Photo     *models.PhotoRecord
	Err       *StageError
}

func (r Result) Confirmed() bool { return r.Err == nil && r.Photo != nil }

// Stage returns the failing stage, or "" for a confirmed result.
func (r Result) Stage() Stage {
	if r.Err == nil {
		return ""
	}
	return r.Err.Stage
}

func (r Result) String() string {
	if r.Confirmed() {
		return fmt.Sprintf("%s: confirmed (%s)", r.File.Name, r.Photo.ID)
	}
	if r.Err == nil {
		return fmt.Sprintf("%s: not processed", r.File.Name)
	}
	return fmt.Sprintf("%s: failed at %s: %v", r.File.Name, r.Err.Stage, r.Err.Err)
}

// Summary aggregates a batch for the "N of M uploaded" report.
type Summary struct {
	Total     int
	Confirmed int
	Failed    int
	ByStage   map[Stage]int
}

func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), ByStage: map[Stage]int{}}
	for _, r := range results {
		if r.Confirmed() {
			s.Confirmed++
			continue
		}
		s.Failed++
		if r.Err != nil {
			s.ByStage[r.Err.Stage]++
		}
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("%d of %d uploaded", s.Confirmed, s.Total)
}

// FailedFiles returns the files whose result is not confirmed, in order.
func FailedFiles(results []Result) []LocalFile {
	var files []LocalFile
	for _, r := range results {
		if !r.Confirmed() {
			files = append(files, r.File)
		}
	}
	return files
}
