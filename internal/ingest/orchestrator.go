// Package ingest drives photos through the three-phase presigned upload:
// request an upload slot, PUT the bytes to blob storage, confirm the object
// so the backend creates a PhotoRecord.
//
// Each file runs its phases strictly in order. A failure ends only that
// file's pipeline and is reported as a Result tagged with the failing stage;
// siblings are not affected. Nothing is retried here: callers resubmit the
// failed subset (see FailedFiles), which requests fresh slots.
package ingest

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type SlotRequester interface {
	RequestUploadSlot(ctx context.Context, req models.UploadRequest) (models.UploadSlot, error)
}

type Transferrer interface {
	Transfer(ctx context.Context, slot models.UploadSlot, contentType string, body io.Reader, size int64) error
}

type Confirmer interface {
	ConfirmUpload(ctx context.Context, eventID, objectKey string) (models.PhotoRecord, error)
}

type PhotoLister interface {
	ListEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error)
}

// Backend is everything the orchestrator needs from the API and storage.
type Backend interface {
	SlotRequester
	Transferrer
	Confirmer
	PhotoLister
}

// Compensator removes bytes that were stored but could not be confirmed.
type Compensator interface {
	Discard(ctx context.Context, objectKey string) error
}

// ProgressFunc is called once per file as soon as its result is known.
// index is the file's position in the input.
type ProgressFunc func(index int, r Result)

const compensateTimeout = 30 * time.Second

type Orchestrator struct {
	backend     Backend
	compensator Compensator
	logger      logging.Logger
	concurrency int
	limiter     *rate.Limiter
	progress    ProgressFunc

	newBatchID func() string
}

type Option func(*Orchestrator)

// WithConcurrency bounds how many files are in flight at once. Values below
// 2 mean sequential processing, the default.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) { o.concurrency = n }
}

// WithRateLimit throttles how often a new file may start. A zero limit
// disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *Orchestrator) {
		if perSecond <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func WithCompensator(c Compensator) Option {
	return func(o *Orchestrator) { o.compensator = c }
}

func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

func New(backend Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:     backend,
		logger:      logging.Discard(),
		concurrency: 1,
		newBatchID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Ingest uploads files to eventID and returns one Result per file, in input
// order. It never fails as a whole; every error is attached to its file.
func (o *Orchestrator) Ingest(ctx context.Context, eventID string, files []LocalFile) []Result {
	return o.IngestBatch(ctx, o.newBatchID(), eventID, files)
}

// IngestBatch is Ingest with a caller-chosen batch id, used to correlate the
// log lines with a journal entry.
func (o *Orchestrator) IngestBatch(ctx context.Context, batchID, eventID string, files []LocalFile) []Result {
	results := make([]Result, len(files))
	if len(files) == 0 {
		return results
	}

	log := o.logger.With("batch_id", batchID, "event_id", eventID)
	log.Info(ctx, "ingest started", "files", len(files), "concurrency", o.concurrency)

	var mu sync.Mutex
	report := func(i int, r Result) {
		if o.progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		o.progress(i, r)
	}

	if o.concurrency < 2 {
		for i, f := range files {
			results[i] = o.ingestOne(ctx, log, eventID, f)
			report(i, results[i])
		}
	} else {
		var g errgroup.Group
		g.SetLimit(o.concurrency)
		for i, f := range files {
			i, f := i, f // per-iteration copies; go.mod targets go1.21 loop semantics
			g.Go(func() error {
				results[i] = o.ingestOne(ctx, log, eventID, f)
				report(i, results[i])
				return nil
			})
		}
		_ = g.Wait()
	}

	s := Summarize(results)
	log.Info(ctx, "ingest finished", "confirmed", s.Confirmed, "failed", s.Failed)
	return results
}

// LoadEventPhotos lists the event's confirmed photos in backend order.
func (o *Orchestrator) LoadEventPhotos(ctx context.Context, eventID string) ([]models.PhotoRecord, error) {
	return o.backend.ListEventPhotos(ctx, eventID)
}

func (o *Orchestrator) ingestOne(ctx context.Context, log logging.Logger, eventID string, f LocalFile) Result {
	log = log.With("file", f.Name)

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return o.fail(ctx, log, f, "", StageSlot, err)
		}
	}

	req := models.UploadRequest{EventID: eventID, Filename: f.Name, ContentType: f.ContentType}
	slot, err := o.backend.RequestUploadSlot(ctx, req)
	if err != nil {
		return o.fail(ctx, log, f, "", StageSlot, err)
	}
	log.Debug(ctx, "slot issued", "key", slot.ObjectKey)

	if err := o.transfer(ctx, slot, f); err != nil {
		// The slot is abandoned and expires on its own.
		return o.fail(ctx, log, f, slot.ObjectKey, StageTransfer, err)
	}
	log.Debug(ctx, "bytes stored", "key", slot.ObjectKey)

	photo, err := o.backend.ConfirmUpload(ctx, eventID, slot.ObjectKey)
	if err != nil {
		o.compensate(ctx, log, slot.ObjectKey)
		return o.fail(ctx, log, f, slot.ObjectKey, StageConfirm, err)
	}

	log.Debug(ctx, "photo confirmed", "photo_id", photo.ID)
	return Result{File: f, ObjectKey: slot.ObjectKey, Photo: &photo}
}

func (o *Orchestrator) transfer(ctx context.Context, slot models.UploadSlot, f LocalFile) error {
	body, err := f.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	return o.backend.Transfer(ctx, slot, f.ContentType, body, f.Size)
}

func (o *Orchestrator) compensate(ctx context.Context, log logging.Logger, key string) {
	if o.compensator == nil {
		log.Warn(ctx, "stored object left unconfirmed", "key", key)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()

	if err := o.compensator.Discard(ctx, key); err != nil {
		log.Error(ctx, "discard of unconfirmed object failed", "key", key, "error", err)
		return
	}
	log.Info(ctx, "unconfirmed object discarded", "key", key)
}

func (o *Orchestrator) fail(ctx context.Context, log logging.Logger, f LocalFile, key string, stage Stage, err error) Result {
	se := &StageError{Stage: stage, File: f.Name, Err: err}
	log.Warn(ctx, "file failed", "stage", string(stage), "error", err)
	return Result{File: f, ObjectKey: key, Err: se}
}
