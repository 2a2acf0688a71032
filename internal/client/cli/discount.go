package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/spf13/cobra"
)

func newDiscountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "discount",
		Short:             "Show or change the global quantity discount",
		PersistentPreRunE: withToken(app),
	}
	cmd.AddCommand(newDiscountGetCmd(app), newDiscountSetCmd(app))
	return cmd
}

func newDiscountGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the global discount rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := app.api.GetGlobalDiscount(cmd.Context())
			if err != nil {
				return err
			}
			if rule == nil {
				fmt.Fprintln(app.out, "No discount rule saved; the console default would be:")
				def := models.DefaultDiscountRule()
				rule = &def
			}
			return app.printRule(*rule)
		},
	}
}

func newDiscountSetCmd(app *App) *cobra.Command {
	var (
		name       string
		tiers      []string
		useDefault bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the global discount rule",
		Example: "  photodesk discount set --name Standard --tier 1-1:0 --tier 2-20:5 --tier 21-999:10\n" +
			"  photodesk discount set --default",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := models.DefaultDiscountRule()
			if !useDefault {
				rule = models.DiscountRule{Name: name}
				for _, s := range tiers {
					t, err := parseTier(s)
					if err != nil {
						return err
					}
					rule.Tiers = append(rule.Tiers, t)
				}
			}

			saved, err := app.api.UpdateGlobalDiscount(cmd.Context(), rule)
			if err != nil {
				return fmt.Errorf("failed to save discount: %w", err)
			}
			return app.printRule(saved)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "rule name")
	cmd.Flags().StringArrayVar(&tiers, "tier", nil, "tier as MIN-MAX:PERCENT, repeatable")
	cmd.Flags().BoolVar(&useDefault, "default", false, "save the built-in default table")
	cmd.MarkFlagsMutuallyExclusive("default", "tier")
	return cmd
}

// parseTier reads "MIN-MAX:PERCENT", e.g. "2-20:5".
func parseTier(s string) (models.DiscountTier, error) {
	bad := fmt.Errorf("%w: tier %q must look like MIN-MAX:PERCENT", models.ErrInvalidDiscountRule, s)

	rng, pct, ok := strings.Cut(s, ":")
	if !ok {
		return models.DiscountTier{}, bad
	}
	lo, hi, ok := strings.Cut(rng, "-")
	if !ok {
		return models.DiscountTier{}, bad
	}

	minQty, err1 := strconv.Atoi(strings.TrimSpace(lo))
	maxQty, err2 := strconv.Atoi(strings.TrimSpace(hi))
	percent, err3 := strconv.ParseFloat(strings.TrimSpace(pct), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return models.DiscountTier{}, bad
	}
	return models.DiscountTier{MinQty: minQty, MaxQty: maxQty, DiscountPercent: percent}, nil
}

func (a *App) printRule(r models.DiscountRule) error {
	fmt.Fprintln(a.out, r.Name)
	tw := newTable(a.out, "FROM", "TO", "DISCOUNT")
	for _, t := range r.Tiers {
		row(tw, t.MinQty, t.MaxQty, strconv.FormatFloat(t.DiscountPercent, 'f', -1, 64)+"%")
	}
	return tw.Flush()
}
