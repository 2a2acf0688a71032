package models

// Event is a photo shoot with its client-facing gallery.
// Dates are kept as the backend sends them (ISO-8601 strings).
type Event struct {
	ID                string
	Name              string
	ClientName        string
	ClientEmail       string
	EventDate         string
	Location          string
	ExpiresAt         string
	BasePricePerPhoto float64
	GalleryCode       string
}

// EventInput carries the editable event fields. Nil pointers are omitted,
// which makes the same type usable for create and partial update.
type EventInput struct {
	Name              *string  `json:"name,omitempty"`
	ClientName        *string  `json:"clientName,omitempty"`
	ClientEmail       *string  `json:"clientEmail,omitempty"`
	EventDate         *string  `json:"eventDate,omitempty"`
	Location          *string  `json:"location,omitempty"`
	ExpiresAt         *string  `json:"expiresAt,omitempty"`
	BasePricePerPhoto *float64 `json:"basePricePerPhoto,omitempty"`
}

// EventQuery selects one page of the admin event listing.
type EventQuery struct {
	Search string
	Page   int
	Limit  int
}

// EventPage is one page of events plus paging totals.
type EventPage struct {
	Events     []Event
	Total      int
	Page       int
	TotalPages int
}
