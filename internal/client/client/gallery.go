package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

func (c *HTTPClient) GetGallery(ctx context.Context, code string) (models.Gallery, error) {
	var resp galleryResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "gallery", seg(code)), nil, &resp); err != nil {
		return models.Gallery{}, err
	}

	g := models.Gallery{Event: resp.Event.toModel(), Photos: make([]models.GalleryPhoto, 0, len(resp.Photos))}
	for _, p := range resp.Photos {
		g.Photos = append(g.Photos, models.GalleryPhoto{
			ID:             p.value(),
			URL:            p.URL,
			WatermarkedURL: p.Watermark,
			PreviewKey:     p.PreviewKey,
		})
	}
	return g, nil
}

func (c *HTTPClient) PricePreview(ctx context.Context, code string, photoIDs []string) (models.PricePreview, error) {
	var resp pricePreviewResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "gallery", seg(code), "price-preview"), pricePreviewRequest{PhotoIDs: photoIDs}, &resp); err != nil {
		return models.PricePreview{}, err
	}
	return models.PricePreview(resp), nil
}
