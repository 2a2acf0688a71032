package models

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidDiscountRule = errors.New("invalid discount rule")

// DiscountTier applies DiscountPercent to orders of MinQty..MaxQty photos.
type DiscountTier struct {
	MinQty          int     `json:"minQty"`
	MaxQty          int     `json:"maxQty"`
	DiscountPercent float64 `json:"discountPercent"`
}

// DiscountRule is the global quantity-discount table.
type DiscountRule struct {
	Name  string         `json:"name"`
	Tiers []DiscountTier `json:"tiers"`
}

// DefaultDiscountRule mirrors the table the console offers before one is saved.
func DefaultDiscountRule() DiscountRule {
	return DiscountRule{
		Name: "Default Discounts",
		Tiers: []DiscountTier{
			{MinQty: 1, MaxQty: 1, DiscountPercent: 0},
			{MinQty: 2, MaxQty: 20, DiscountPercent: 5},
			{MinQty: 21, MaxQty: 999, DiscountPercent: 10},
		},
	}
}

// Normalize sorts tiers by MinQty and validates the result. Tiers must have
// MinQty >= 1, MinQty <= MaxQty, a percentage in [0,100] and must not overlap.
func (r *DiscountRule) Normalize() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDiscountRule)
	}
	if len(r.Tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidDiscountRule)
	}

	sort.SliceStable(r.Tiers, func(i, j int) bool { return r.Tiers[i].MinQty < r.Tiers[j].MinQty })

	for i, t := range r.Tiers {
		if t.MinQty < 1 {
			return fmt.Errorf("%w: tier %d: minQty must be >= 1", ErrInvalidDiscountRule, i+1)
		}
		if t.MaxQty < t.MinQty {
			return fmt.Errorf("%w: tier %d: maxQty %d < minQty %d", ErrInvalidDiscountRule, i+1, t.MaxQty, t.MinQty)
		}
		if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
			return fmt.Errorf("%w: tier %d: discount %.2f out of range", ErrInvalidDiscountRule, i+1, t.DiscountPercent)
		}
		if i > 0 && t.MinQty <= r.Tiers[i-1].MaxQty {
			return fmt.Errorf("%w: tier %d overlaps tier %d", ErrInvalidDiscountRule, i+1, i)
		}
	}
	return nil
}

// PercentFor returns the discount for qty photos, or 0 when no tier matches.
func (r DiscountRule) PercentFor(qty int) float64 {
	for _, t := range r.Tiers {
		if qty >= t.MinQty && qty <= t.MaxQty {
			return t.DiscountPercent
		}
	}
	return 0
}
