package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrdersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "orders",
		Short:             "Inspect client orders",
		PersistentPreRunE: withToken(app),
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.api.ListAdminOrders(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}
			if len(orders) == 0 {
				fmt.Fprintln(app.out, "No orders found")
				return nil
			}

			tw := newTable(app.out, "ID", "EVENT", "CLIENT", "PHOTOS", "NET", "STATUS")
			for _, o := range orders {
				event := o.EventName
				if event == "" {
					event = o.EventID
				}
				row(tw, o.ID, orDash(event), o.ClientEmail, o.Quantity, money(o.NetAmount), orDash(o.Status))
			}
			return tw.Flush()
		},
	})
	return cmd
}
