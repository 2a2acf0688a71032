package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

// GetGlobalDiscount returns nil when no rule has been saved yet.
func (c *HTTPClient) GetGlobalDiscount(ctx context.Context) (*models.DiscountRule, error) {
	var resp *models.DiscountRule
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "discounts", "global"), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateGlobalDiscount validates rule locally before sending it.
func (c *HTTPClient) UpdateGlobalDiscount(ctx context.Context, rule models.DiscountRule) (models.DiscountRule, error) {
	if err := rule.Normalize(); err != nil {
		return models.DiscountRule{}, err
	}

	var resp models.DiscountRule
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "discounts", "global"), rule, &resp); err != nil {
		return models.DiscountRule{}, err
	}
	if resp.Name == "" && len(resp.Tiers) == 0 {
		return rule, nil
	}
	return resp, nil
}
