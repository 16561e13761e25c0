package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pricewatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pricewatch.WatchService = (*WatchService)(nil)

// WatchService implements pricewatch.WatchService using SQLite.
type WatchService struct {
	db *DB
}

// NewWatchService creates a new WatchService.
func NewWatchService(db *DB) *WatchService {
	return &WatchService{db: db}
}

// CreateWatch creates a new watch.
func (s *WatchService) CreateWatch(ctx context.Context, watch *pricewatch.Watch) error {
	if err := watch.Validate(); err != nil {
		return err
	}

	watch.ID = uuid.New().String()
	now := time.Now().UTC()
	watch.CreatedAt = now
	watch.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watches (id, url, locator_kind, locator_value, title, currency, last_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, watch.ID, watch.URL, string(watch.Locator.Kind), watch.Locator.Value, watch.Title,
		string(watch.Currency), watch.LastPrice,
		watch.CreatedAt.Format(time.RFC3339), watch.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindWatchByID retrieves a watch by ID.
func (s *WatchService) FindWatchByID(ctx context.Context, id string) (*pricewatch.Watch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, locator_kind, locator_value, title, currency, last_price, created_at, updated_at
		FROM watches
		WHERE id = ?
	`, id)

	watch, err := scanWatch(row.Scan)
	if err == sql.ErrNoRows {
		return nil, pricewatch.Errorf(pricewatch.ENOTFOUND, "watch not found")
	}
	if err != nil {
		return nil, err
	}
	return watch, nil
}

// FindWatches retrieves watches matching the filter, oldest first.
func (s *WatchService) FindWatches(ctx context.Context, filter pricewatch.WatchFilter) ([]*pricewatch.Watch, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, locator_kind, locator_value, title, currency, last_price, created_at, updated_at FROM watches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watches []*pricewatch.Watch
	for rows.Next() {
		watch, err := scanWatch(rows.Scan)
		if err != nil {
			return nil, err
		}
		watches = append(watches, watch)
	}
	return watches, rows.Err()
}

// UpdateWatch updates an existing watch.
func (s *WatchService) UpdateWatch(ctx context.Context, id string, upd pricewatch.WatchUpdate) (*pricewatch.Watch, error) {
	watch, err := s.FindWatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		watch.Title = *upd.Title
	}
	if upd.Locator != nil {
		watch.Locator = *upd.Locator
	}
	if upd.Currency != nil {
		watch.Currency = *upd.Currency
	}
	if upd.LastPrice != nil {
		watch.LastPrice = upd.LastPrice
	}
	if err := watch.Validate(); err != nil {
		return nil, err
	}
	watch.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE watches
		SET title = ?, locator_kind = ?, locator_value = ?, currency = ?, last_price = ?, updated_at = ?
		WHERE id = ?
	`, watch.Title, string(watch.Locator.Kind), watch.Locator.Value, string(watch.Currency),
		watch.LastPrice, watch.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return watch, nil
}

// DeleteWatch permanently removes a watch and its check history.
func (s *WatchService) DeleteWatch(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM watches WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pricewatch.Errorf(pricewatch.ENOTFOUND, "watch not found")
	}
	return nil
}

// scanWatch scans one watches row using the provided scan function.
func scanWatch(scan func(dest ...any) error) (*pricewatch.Watch, error) {
	var watch pricewatch.Watch
	var kind, currency, createdAt, updatedAt string
	var lastPrice sql.NullFloat64

	if err := scan(&watch.ID, &watch.URL, &kind, &watch.Locator.Value, &watch.Title,
		&currency, &lastPrice, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	watch.Locator.Kind = pricewatch.LocatorKind(kind)
	watch.Currency = pricewatch.Currency(currency)
	if lastPrice.Valid {
		watch.LastPrice = &lastPrice.Float64
	}

	var err error
	watch.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	watch.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &watch, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
