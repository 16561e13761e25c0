package mock

import (
	"context"

	"github.com/fwojciec/pricewatch"
)

var (
	_ pricewatch.WatchService = (*WatchService)(nil)
	_ pricewatch.CheckService = (*CheckService)(nil)
)

// WatchService is a mock implementation of pricewatch.WatchService.
type WatchService struct {
	CreateWatchFn   func(ctx context.Context, watch *pricewatch.Watch) error
	FindWatchByIDFn func(ctx context.Context, id string) (*pricewatch.Watch, error)
	FindWatchesFn   func(ctx context.Context, filter pricewatch.WatchFilter) ([]*pricewatch.Watch, error)
	UpdateWatchFn   func(ctx context.Context, id string, upd pricewatch.WatchUpdate) (*pricewatch.Watch, error)
	DeleteWatchFn   func(ctx context.Context, id string) error
}

func (s *WatchService) CreateWatch(ctx context.Context, watch *pricewatch.Watch) error {
	return s.CreateWatchFn(ctx, watch)
}

func (s *WatchService) FindWatchByID(ctx context.Context, id string) (*pricewatch.Watch, error) {
	return s.FindWatchByIDFn(ctx, id)
}

func (s *WatchService) FindWatches(ctx context.Context, filter pricewatch.WatchFilter) ([]*pricewatch.Watch, error) {
	return s.FindWatchesFn(ctx, filter)
}

func (s *WatchService) UpdateWatch(ctx context.Context, id string, upd pricewatch.WatchUpdate) (*pricewatch.Watch, error) {
	return s.UpdateWatchFn(ctx, id, upd)
}

func (s *WatchService) DeleteWatch(ctx context.Context, id string) error {
	return s.DeleteWatchFn(ctx, id)
}

// CheckService is a mock implementation of pricewatch.CheckService.
type CheckService struct {
	CreateCheckFn       func(ctx context.Context, check *pricewatch.PriceCheck) error
	FindChecksByWatchFn func(ctx context.Context, watchID string, limit int) ([]*pricewatch.PriceCheck, error)
}

func (s *CheckService) CreateCheck(ctx context.Context, check *pricewatch.PriceCheck) error {
	return s.CreateCheckFn(ctx, check)
}

func (s *CheckService) FindChecksByWatch(ctx context.Context, watchID string, limit int) ([]*pricewatch.PriceCheck, error) {
	return s.FindChecksByWatchFn(ctx, watchID, limit)
}
