package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/pricewatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pricewatch.CheckService = (*CheckService)(nil)

// CheckService implements pricewatch.CheckService using SQLite.
type CheckService struct {
	db *DB
}

// NewCheckService creates a new CheckService.
func NewCheckService(db *DB) *CheckService {
	return &CheckService{db: db}
}

// CreateCheck records a completed check.
func (s *CheckService) CreateCheck(ctx context.Context, check *pricewatch.PriceCheck) error {
	if err := check.Validate(); err != nil {
		return err
	}

	check.ID = uuid.New().String()
	if check.CheckedAt.IsZero() {
		check.CheckedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checks (id, watch_id, status, value, content_hash, duration_ms, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, check.ID, check.WatchID, string(check.Status), check.Value, check.ContentHash,
		check.Duration.Milliseconds(), check.CheckedAt.Format(time.RFC3339))

	return err
}

// FindChecksByWatch retrieves the most recent checks for a watch, newest
// first. A limit of 0 returns all checks.
func (s *CheckService) FindChecksByWatch(ctx context.Context, watchID string, limit int) ([]*pricewatch.PriceCheck, error) {
	var query strings.Builder
	args := []any{watchID}

	query.WriteString(`
		SELECT id, watch_id, status, value, content_hash, duration_ms, checked_at
		FROM checks
		WHERE watch_id = ?
		ORDER BY checked_at DESC`)
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []*pricewatch.PriceCheck
	for rows.Next() {
		var check pricewatch.PriceCheck
		var status, checkedAt string
		var value sql.NullFloat64
		var durationMS int64

		if err := rows.Scan(&check.ID, &check.WatchID, &status, &value,
			&check.ContentHash, &durationMS, &checkedAt); err != nil {
			return nil, err
		}

		check.Status = pricewatch.Status(status)
		if value.Valid {
			check.Value = &value.Float64
		}
		check.Duration = time.Duration(durationMS) * time.Millisecond
		check.CheckedAt, err = parseRFC3339(checkedAt, "checked_at")
		if err != nil {
			return nil, err
		}

		checks = append(checks, &check)
	}
	return checks, rows.Err()
}
