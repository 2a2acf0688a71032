package cli

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/dmitrijs2005/photodesk/internal/filex"
	"github.com/dmitrijs2005/photodesk/internal/netx"
	"github.com/spf13/cobra"
)

// Gallery commands use the public, code- or token-addressed endpoints and
// need no bearer token.
func newGalleryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Work with a client gallery as the client would",
	}
	cmd.AddCommand(
		newGalleryShowCmd(app),
		newGalleryPreviewCmd(app),
		newGalleryOrderCmd(app),
		newGalleryDownloadCmd(app),
	)
	return cmd
}

func newGalleryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show the event and photos behind a gallery code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := app.api.GetGallery(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s (%s), %s per photo\n", g.Event.Name, orDash(g.Event.EventDate), money(g.Event.BasePricePerPhoto))
			tw := newTable(app.out, "PHOTO", "URL")
			for _, p := range g.Photos {
				u := p.WatermarkedURL
				if u == "" {
					u = p.URL
				}
				row(tw, p.ID, orDash(u))
			}
			return tw.Flush()
		},
	}
}

func newGalleryPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview CODE PHOTO_ID...",
		Short: "Quote the price of a photo selection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.api.PricePreview(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			tw := newTable(app.out, "ITEM", "AMOUNT")
			row(tw, "photos", len(args)-1)
			row(tw, "price per photo", money(p.BasePrice))
			row(tw, "gross", money(p.Gross))
			row(tw, "discount", strconv.FormatFloat(p.DiscountPercent, 'f', -1, 64)+"% (-"+money(p.DiscountAmount)+")")
			row(tw, "net", money(p.Net))
			return tw.Flush()
		},
	}
}

func newGalleryOrderCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "order CODE PHOTO_ID...",
		Short: "Place an order for a photo selection",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.api.CreateOrderFromGallery(cmd.Context(), args[0], args[1:], email)
			if err != nil {
				return fmt.Errorf("failed to place order: %w", err)
			}
			fmt.Fprintf(app.out, "order %s\ndownload token %s\n", r.OrderID, r.DownloadToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "client email the order is sent to")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newGalleryDownloadCmd(app *App) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "download TOKEN",
		Short: "List, or with --out fetch, the purchased photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			photos, err := app.api.GetDownload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				for _, p := range photos {
					fmt.Fprintf(app.out, "%s\t%s\n", p.ID, p.URL)
				}
				return nil
			}

			dir, err := filex.EnsureDir(outDir)
			if err != nil {
				return err
			}
			hc := &http.Client{}
			for _, p := range photos {
				saved, err := filex.WriteFile(dir, p.ID+photoExt(p.URL), func(w io.Writer) error {
					_, err := netx.Download(cmd.Context(), hc, p.URL, w)
					return err
				})
				if err != nil {
					return fmt.Errorf("download %s: %w", p.ID, err)
				}
				fmt.Fprintln(app.out, saved)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to save the photos in")
	return cmd
}

func photoExt(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := path.Ext(u.Path); ext != "" {
			return ext
		}
	}
	return ".jpg"
}
