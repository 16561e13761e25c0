package pricewatch

import (
	"context"
	"time"
)

// Watch represents a tracked product price: a URL plus the hint needed to
// locate the price on each re-check.
type Watch struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Locator   Locator   `json:"locator"`
	Title     string    `json:"title"`
	Currency  Currency  `json:"currency"`
	LastPrice *float64  `json:"lastPrice,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the watch contains invalid fields.
func (w *Watch) Validate() error {
	if w.URL == "" {
		return Errorf(EINVALID, "watch URL required")
	}
	if err := w.Locator.Validate(); err != nil {
		return err
	}
	if w.Currency != CurrencyYen && w.Currency != CurrencyUSD {
		return Errorf(EINVALID, "unsupported currency %q", w.Currency)
	}
	return nil
}

// Request builds the crawl request for this watch.
func (w *Watch) Request() Request {
	return Request{
		URL:      w.URL,
		Locator:  w.Locator,
		Title:    w.Title,
		Currency: w.Currency,
	}
}

// WatchService represents a service for managing watches.
type WatchService interface {
	// CreateWatch creates a new watch.
	CreateWatch(ctx context.Context, watch *Watch) error

	// FindWatchByID retrieves a watch by ID.
	// Returns ENOTFOUND if watch does not exist.
	FindWatchByID(ctx context.Context, id string) (*Watch, error)

	// FindWatches retrieves watches matching the filter.
	FindWatches(ctx context.Context, filter WatchFilter) ([]*Watch, error)

	// UpdateWatch updates an existing watch.
	// Returns ENOTFOUND if watch does not exist.
	UpdateWatch(ctx context.Context, id string, upd WatchUpdate) (*Watch, error)

	// DeleteWatch permanently removes a watch and its check history.
	// Returns ENOTFOUND if watch does not exist.
	DeleteWatch(ctx context.Context, id string) error
}

// WatchFilter represents a filter for FindWatches.
type WatchFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WatchUpdate represents fields that can be updated on a watch.
type WatchUpdate struct {
	Title     *string   `json:"title"`
	Locator   *Locator  `json:"locator"`
	Currency  *Currency `json:"currency"`
	LastPrice *float64  `json:"lastPrice"`
}

// PriceCheck records the outcome of one scheduled check of a watch.
type PriceCheck struct {
	ID          string        `json:"id"`
	WatchID     string        `json:"watchId"`
	Status      Status        `json:"status"`
	Value       *float64      `json:"value,omitempty"`
	ContentHash string        `json:"contentHash,omitempty"`
	Duration    time.Duration `json:"duration"`
	CheckedAt   time.Time     `json:"checkedAt"`
}

// Validate returns an error if the check contains invalid fields.
func (c *PriceCheck) Validate() error {
	if c.WatchID == "" {
		return Errorf(EINVALID, "check watch ID required")
	}
	if c.Status == "" {
		return Errorf(EINVALID, "check status required")
	}
	return nil
}

// CheckService represents a service for recording check history.
type CheckService interface {
	// CreateCheck records a completed check.
	CreateCheck(ctx context.Context, check *PriceCheck) error

	// FindChecksByWatch retrieves the most recent checks for a watch,
	// newest first. A limit of 0 returns all checks.
	FindChecksByWatch(ctx context.Context, watchID string, limit int) ([]*PriceCheck, error)
}
