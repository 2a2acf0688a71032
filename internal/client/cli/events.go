package cli

import (
	"fmt"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "events",
		Short:             "Manage photo shoot events",
		PersistentPreRunE: withToken(app),
	}
	cmd.AddCommand(
		newEventsListCmd(app),
		newEventsGetCmd(app),
		newEventsCreateCmd(app),
		newEventsUpdateCmd(app),
		newEventsDeleteCmd(app),
	)
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	var q models.EventQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := app.api.ListEvents(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}
			if len(page.Events) == 0 {
				fmt.Fprintln(app.out, "No events found")
				return nil
			}

			tw := newTable(app.out, "ID", "NAME", "CLIENT", "DATE", "PRICE", "GALLERY")
			for _, e := range page.Events {
				row(tw, e.ID, e.Name, orDash(e.ClientName), orDash(e.EventDate), money(e.BasePricePerPhoto), orDash(e.GalleryCode))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "page %d of %d, %d events\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "filter by name or client")
	cmd.Flags().IntVar(&q.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size (backend default when 0)")
	return cmd
}

func newEventsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get EVENT_ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.api.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.printEvent(e)
			return nil
		},
	}
}

func newEventsCreateCmd(app *App) *cobra.Command {
	var ef eventFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.api.CreateEvent(cmd.Context(), ef.input(cmd.Flags()))
			if err != nil {
				return fmt.Errorf("failed to create event: %w", err)
			}
			app.printEvent(e)
			return nil
		},
	}
	ef.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newEventsUpdateCmd(app *App) *cobra.Command {
	var ef eventFlags

	cmd := &cobra.Command{
		Use:   "update EVENT_ID",
		Short: "Change an event; only the given flags are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ef.input(cmd.Flags())
			if in == (models.EventInput{}) {
				return fmt.Errorf("%w: nothing to update, pass at least one field flag", common.ErrValidation)
			}
			e, err := app.api.UpdateEvent(cmd.Context(), args[0], in)
			if err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}
			app.printEvent(e)
			return nil
		},
	}
	ef.register(cmd.Flags())
	return cmd
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.api.DeleteEvent(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
			fmt.Fprintf(app.out, "Event %s deleted\n", args[0])
			return nil
		},
	}
}

type eventFlags struct {
	name, clientName, clientEmail string
	date, location, expires       string
	price                         float64
}

func (f *eventFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "event name")
	fs.StringVar(&f.clientName, "client-name", "", "client name")
	fs.StringVar(&f.clientEmail, "client-email", "", "client email")
	fs.StringVar(&f.date, "date", "", "event date (YYYY-MM-DD)")
	fs.StringVar(&f.location, "location", "", "location")
	fs.StringVar(&f.expires, "expires", "", "gallery expiry date (YYYY-MM-DD)")
	fs.Float64Var(&f.price, "price", 0, "base price per photo")
}

// input includes only the flags that were set.
func (f *eventFlags) input(fs *pflag.FlagSet) models.EventInput {
	var in models.EventInput
	str := func(name string, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	in.Name = str("name", f.name)
	in.ClientName = str("client-name", f.clientName)
	in.ClientEmail = str("client-email", f.clientEmail)
	in.EventDate = str("date", f.date)
	in.Location = str("location", f.location)
	in.ExpiresAt = str("expires", f.expires)
	if fs.Changed("price") {
		p := f.price
		in.BasePricePerPhoto = &p
	}
	return in
}

func (a *App) printEvent(e models.Event) {
	tw := newTable(a.out, "FIELD", "VALUE")
	row(tw, "id", e.ID)
	row(tw, "name", e.Name)
	row(tw, "client", orDash(e.ClientName))
	row(tw, "client email", orDash(e.ClientEmail))
	row(tw, "date", orDash(e.EventDate))
	row(tw, "location", orDash(e.Location))
	row(tw, "expires", orDash(e.ExpiresAt))
	row(tw, "price per photo", money(e.BasePricePerPhoto))
	row(tw, "gallery code", orDash(e.GalleryCode))
	_ = tw.Flush()
}
