package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/client/client"
	"github.com/dmitrijs2005/photodesk/internal/client/config"
	"github.com/dmitrijs2005/photodesk/internal/client/repositories/journal"
	"github.com/dmitrijs2005/photodesk/internal/client/services"
	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/dmitrijs2005/photodesk/internal/ingest"
	"github.com/dmitrijs2005/photodesk/internal/logging"
	"github.com/dmitrijs2005/photodesk/internal/storage"
	"github.com/spf13/cobra"
)

// App carries what one command invocation needs. It is filled in by the
// root command's PersistentPreRunE.
type App struct {
	cfg    *config.Config
	logger logging.Logger
	api    *client.HTTPClient

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	closers []func() error
	now     func() time.Time
}

func (a *App) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.in = bufio.NewReader(cmd.InOrStdin())
	a.out = cmd.OutOrStdout()
	a.errOut = cmd.ErrOrStderr()
	a.logger = logging.New(a.errOut, cfg.LogLevel, cfg.LogFormat)
	if a.now == nil {
		a.now = time.Now
	}

	a.api, err = client.NewHTTPClient(cfg.APIBaseURL, client.NewCredential(cfg.Token),
		client.WithTimeout(cfg.RequestTimeout),
		// Presigned PUTs of large files are bounded by the context only.
		client.WithStorageClient(&http.Client{}),
		client.WithLogger(a.logger),
	)
	return err
}

// Close releases resources opened during the command, such as the journal.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// requireToken fails fast when no usable bearer token is configured. An
// undecodable token only warns, the backend has the final word.
func (a *App) requireToken(ctx context.Context) error {
	cred := a.api.Credential()
	if cred.IsZero() {
		return fmt.Errorf("%w: no token configured (use --token or PHOTODESK_TOKEN)", common.ErrUnauthorized)
	}
	err := cred.Check(a.now())
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return fmt.Errorf("%w: run `photodesk login` again", err)
	case err != nil:
		a.logger.Warn(ctx, "token is not a decodable JWT, expiry not checked", "error", err)
	}
	return nil
}

func (a *App) openJournal(ctx context.Context) (journal.Repository, error) {
	if a.cfg.JournalPath == "" {
		return nil, nil
	}
	db, err := journal.Open(ctx, a.cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	return journal.NewSQLiteRepository(db), nil
}

func (a *App) objectStore(ctx context.Context) (*storage.S3Store, error) {
	if !a.cfg.HasS3() {
		return nil, nil
	}
	return storage.NewS3Store(ctx, storage.Config{
		Bucket:       a.cfg.S3Bucket,
		Region:       a.cfg.S3Region,
		BaseEndpoint: a.cfg.S3BaseEndpoint,
		AccessKey:    a.cfg.S3AccessKey,
		SecretKey:    a.cfg.S3SecretKey,
	})
}

// photoService wires the orchestrator, journal and blob store. progress may
// be nil.
func (a *App) photoService(ctx context.Context, progress ingest.ProgressFunc) (services.PhotoService, error) {
	repo, err := a.openJournal(ctx)
	if err != nil {
		return nil, err
	}
	store, err := a.objectStore(ctx)
	if err != nil {
		return nil, err
	}

	opts := []ingest.Option{
		ingest.WithConcurrency(a.cfg.Concurrency),
		ingest.WithRateLimit(a.cfg.UploadRate, a.cfg.Concurrency),
		ingest.WithLogger(a.logger),
	}
	if progress != nil {
		opts = append(opts, ingest.WithProgress(progress))
	}
	if a.cfg.CompensateOnConfirmFailure && store != nil {
		opts = append(opts, ingest.WithCompensator(store))
	}

	svcOpts := []services.PhotoOption{services.WithLogger(a.logger)}
	if store != nil {
		svcOpts = append(svcOpts, services.WithObjectStore(store))
	}
	return services.NewPhotoService(ingest.New(a.api, opts...), repo, svcOpts...), nil
}
