package cli

import (
	"fmt"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/client/services"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		Long: "Log in with email and password. The token is printed to stdout and not stored;\n" +
			"pass it back with --token or PHOTODESK_TOKEN.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = app.promptIfEmpty(email, "Email"); err != nil {
				return err
			}
			if password == "" {
				if password, err = GetPassword(app.errOut, "Password"); err != nil {
					return err
				}
			}

			s, err := services.NewAuthService(app.api).Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return app.printSession(s)
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an admin account and print its bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = app.promptIfEmpty(name, "Name"); err != nil {
				return err
			}
			if email, err = app.promptIfEmpty(email, "Email"); err != nil {
				return err
			}
			if password == "" {
				if password, err = GetPassword(app.errOut, "Password"); err != nil {
					return err
				}
			}

			s, err := services.NewAuthService(app.api).Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			return app.printSession(s)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newVerifyOTPCmd(app *App) *cobra.Command {
	var email, otp string

	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Confirm a registered email with the one-time code sent to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = app.promptIfEmpty(email, "Email"); err != nil {
				return err
			}
			if otp, err = app.promptIfEmpty(otp, "Code"); err != nil {
				return err
			}

			if err := services.NewAuthService(app.api).VerifyOTP(cmd.Context(), email, otp); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Email %s verified, you can log in now\n", email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&otp, "otp", "", "one-time code (prompted when omitted)")
	return cmd
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account the token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireToken(cmd.Context()); err != nil {
				return err
			}
			u, err := services.NewAuthService(app.api).WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s <%s> (%s)\n", u.Name, u.Email, u.ID)
			if exp, ok, _ := app.api.Credential().ExpiresAt(); ok {
				fmt.Fprintf(app.out, "token expires %s\n", exp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func (a *App) promptIfEmpty(v, prompt string) (string, error) {
	if v != "" {
		return v, nil
	}
	return GetSimpleText(a.in, prompt, a.errOut)
}

// printSession writes the greeting to stderr and the bare token to stdout so
// the output can be captured by a shell.
func (a *App) printSession(s models.Session) error {
	if s.User != nil {
		fmt.Fprintf(a.errOut, "Logged in as %s <%s>\n", s.User.Name, s.User.Email)
	}
	_, err := fmt.Fprintln(a.out, s.Token)
	return err
}
