package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

func (c *HTTPClient) ListEvents(ctx context.Context, q models.EventQuery) (models.EventPage, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var resp eventListResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(query, "events"), nil, &resp); err != nil {
		return models.EventPage{}, err
	}

	page := models.EventPage{
		Events:     make([]models.Event, 0, len(resp.Events)),
		Total:      resp.Total,
		Page:       resp.Page,
		TotalPages: resp.TotalPages,
	}
	if page.Page == 0 {
		page.Page = 1
	}
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	for _, e := range resp.Events {
		page.Events = append(page.Events, e.toModel())
	}
	return page, nil
}

func (c *HTTPClient) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var resp wireEvent
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "events", seg(id)), nil, &resp); err != nil {
		return models.Event{}, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, in models.EventInput) (models.Event, error) {
	var resp wireEvent
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "events"), in, &resp); err != nil {
		return models.Event{}, err
	}
	return resp.toModel(), nil
}

// UpdateEvent patches only the fields set in in.
func (c *HTTPClient) UpdateEvent(ctx context.Context, id string, in models.EventInput) (models.Event, error) {
	var resp wireEvent
	if err := c.do(ctx, http.MethodPatch, c.endpoint(nil, "events", seg(id)), in, &resp); err != nil {
		return models.Event{}, err
	}
	return resp.toModel(), nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(nil, "events", seg(id)), nil, nil)
}
