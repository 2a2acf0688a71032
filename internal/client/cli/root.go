package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/photodesk/internal/buildinfo"
	"github.com/dmitrijs2005/photodesk/internal/client/config"
	"github.com/spf13/cobra"
)

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "photodesk",
		Short:         "Admin console for the photodesk photo delivery backend",
		Long:          "Manage events, upload photos through presigned storage URLs, and inspect orders and client galleries.",
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newVerifyOTPCmd(app),
		newWhoAmICmd(app),
		newEventsCmd(app),
		newPhotosCmd(app),
		newDiscountCmd(app),
		newOrdersCmd(app),
		newGalleryCmd(app),
	)
	return root
}

// withToken is the PersistentPreRunE of command groups that call admin
// endpoints. It replaces the root hook, so it initializes the app too.
func withToken(app *App) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := app.init(cmd); err != nil {
			return err
		}
		return app.requireToken(cmd.Context())
	}
}

// Run executes one command line with the given streams.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := &App{}
	defer app.Close()

	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// Execute runs the CLI against the process arguments and returns the exit
// code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
