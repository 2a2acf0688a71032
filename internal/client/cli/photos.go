package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photodesk/internal/client/services"
	"github.com/dmitrijs2005/photodesk/internal/ingest"
	"github.com/spf13/cobra"
)

// ErrIncompleteBatch makes the process exit non-zero when some files of a
// batch were not confirmed.
var ErrIncompleteBatch = errors.New("some files were not uploaded")

func newPhotosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "photos",
		Short:             "Upload and inspect event photos",
		PersistentPreRunE: withToken(app),
	}
	cmd.AddCommand(
		newPhotosUploadCmd(app),
		newPhotosRetryCmd(app),
		newPhotosListCmd(app),
		newPhotosHistoryCmd(app),
		newPhotosOrphansCmd(app),
	)
	return cmd
}

func newPhotosUploadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "upload EVENT_ID PATH...",
		Short: "Upload files (or the images in directories) to an event",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.photoService(cmd.Context(), app.progress())
			if err != nil {
				return err
			}
			rep, err := svc.Upload(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			return app.printReport(rep)
		},
	}
}

func newPhotosRetryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "retry EVENT_ID",
		Short: "Upload again the files that failed in the last batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.photoService(cmd.Context(), app.progress())
			if err != nil {
				return err
			}
			rep, err := svc.Retry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(rep.Results) == 0 {
				fmt.Fprintf(app.out, "Nothing to retry for event %s\n", args[0])
				return nil
			}
			return app.printReport(rep)
		},
	}
}

func newPhotosListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list EVENT_ID",
		Short: "List the confirmed photos of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.photoService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			photos, err := svc.List(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list photos: %w", err)
			}
			if len(photos) == 0 {
				fmt.Fprintln(app.out, "No photos yet")
				return nil
			}

			tw := newTable(app.out, "ID", "KEY", "PREVIEW", "CREATED")
			for _, p := range photos {
				created := "-"
				if !p.CreatedAt.IsZero() {
					created = p.CreatedAt.Local().Format("2006-01-02 15:04")
				}
				row(tw, p.ID, p.ObjectKey, orDash(app.previewURL(p.PreviewKey)), created)
			}
			return tw.Flush()
		},
	}
}

func newPhotosHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history [EVENT_ID]",
		Short: "Show journaled upload batches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := ""
			if len(args) == 1 {
				eventID = args[0]
			}
			svc, err := app.photoService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			batches, err := svc.History(cmd.Context(), eventID)
			if err != nil {
				return err
			}
			if len(batches) == 0 {
				fmt.Fprintln(app.out, "No batches recorded")
				return nil
			}

			tw := newTable(app.out, "BATCH", "EVENT", "STARTED", "CONFIRMED", "FAILED")
			for _, b := range batches {
				row(tw, b.ID, b.EventID, b.StartedAt.Local().Format("2006-01-02 15:04:05"), b.Confirmed, b.Failed())
			}
			return tw.Flush()
		},
	}
}

func newPhotosOrphansCmd(app *App) *cobra.Command {
	var (
		prefix string
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "orphans EVENT_ID",
		Short: "Find stored objects that no confirmed photo refers to",
		Long: "Find stored objects under --prefix that no confirmed photo of the event refers to.\n\n" +
			"With --delete the orphans are removed. Bytes of an upload that is still in flight\n" +
			"(stored but not yet confirmed) look like orphans too, so do not delete while an\n" +
			"upload to the event is running.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.photoService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			rep, err := svc.FindOrphans(cmd.Context(), args[0], prefix, remove)
			if err != nil && rep.Prefix == "" {
				return err
			}
			for _, k := range rep.Orphans {
				fmt.Fprintln(app.out, k)
			}
			fmt.Fprintf(app.errOut, "%d orphans among %d objects under %s", len(rep.Orphans), rep.Scanned, rep.Prefix)
			if remove {
				fmt.Fprintf(app.errOut, ", %d deleted", len(rep.Deleted))
			}
			fmt.Fprintln(app.errOut)
			return err
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "key prefix the event's objects are stored under")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the orphans (not while uploads to the event are running)")
	_ = cmd.MarkFlagRequired("prefix")
	return cmd
}

// progress prints one line per finished file, numbered in completion order.
func (a *App) progress() ingest.ProgressFunc {
	done := 0
	return func(_ int, r ingest.Result) {
		done++
		status := "ok"
		if !r.Confirmed() {
			status = "FAILED at " + string(r.Stage())
		}
		fmt.Fprintf(a.errOut, "[%d] %s: %s\n", done, r.File.Name, status)
	}
}

func (a *App) printReport(rep services.Report) error {
	var failed []string
	for _, r := range rep.Results {
		if !r.Confirmed() {
			failed = append(failed, r.String())
		}
	}

	fmt.Fprintln(a.out, rep.Summary.String())
	if len(failed) == 0 {
		return nil
	}
	for _, f := range failed {
		fmt.Fprintln(a.out, "  "+f)
	}
	if a.cfg.JournalPath != "" {
		fmt.Fprintln(a.out, "run `photodesk photos retry` to resubmit the failed files")
	}
	return fmt.Errorf("%w: %s", ErrIncompleteBatch, rep.Summary)
}

func (a *App) previewURL(key string) string {
	if key == "" || a.cfg.PreviewBaseURL == "" {
		return key
	}
	return strings.TrimRight(a.cfg.PreviewBaseURL, "/") + "/" + key
}
