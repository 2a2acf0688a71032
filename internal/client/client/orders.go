package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

func (c *HTTPClient) ListAdminOrders(ctx context.Context) ([]models.Order, error) {
	var resp []wireOrder
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "orders", "admin"), nil, &resp); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(resp))
	for _, o := range resp {
		orders = append(orders, o.toModel())
	}
	return orders, nil
}

func (c *HTTPClient) CreateOrderFromGallery(ctx context.Context, code string, photoIDs []string, clientEmail string) (models.OrderReceipt, error) {
	var resp orderReceiptResponse
	in := createOrderRequest{PhotoIDs: photoIDs, ClientEmail: clientEmail}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "orders", "gallery", seg(code)), in, &resp); err != nil {
		return models.OrderReceipt{}, err
	}
	return models.OrderReceipt{OrderID: resp.OrderID, DownloadToken: resp.DownloadToken}, nil
}

// GetDownload resolves a download token to the purchased photo links.
func (c *HTTPClient) GetDownload(ctx context.Context, token string) ([]models.DownloadPhoto, error) {
	var resp downloadResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "download", seg(token)), nil, &resp); err != nil {
		return nil, err
	}

	photos := make([]models.DownloadPhoto, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		photos = append(photos, models.DownloadPhoto{ID: p.value(), URL: p.URL})
	}
	return photos, nil
}
