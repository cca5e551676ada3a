package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
)

// SQLiteBusyBlockRepo implements BusyBlockRepo using a SQLite database.
type SQLiteBusyBlockRepo struct {
	db  db.DBTX
	loc *time.Location
}

func NewSQLiteBusyBlockRepo(conn db.DBTX, loc *time.Location) *SQLiteBusyBlockRepo {
	return &SQLiteBusyBlockRepo{db: conn, loc: locationOr(loc)}
}

func (r *SQLiteBusyBlockRepo) Upsert(ctx context.Context, b *domain.BusyBlock) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO busy_blocks (id, title, start_at, end_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, start_at = excluded.start_at, end_at = excluded.end_at`,
		b.ID, b.Title, formatInstant(b.Start), formatInstant(b.End),
	)
	if err != nil {
		return fmt.Errorf("upserting busy block %s: %w", b.ID, err)
	}
	return nil
}

// ListBetween returns blocks overlapping [from, to). A zero bound is open.
// Instants are stored as UTC RFC3339, which sorts lexically.
func (r *SQLiteBusyBlockRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.BusyBlock, error) {
	query := `SELECT id, title, start_at, end_at FROM busy_blocks WHERE 1=1`
	var args []any
	if !from.IsZero() {
		query += ` AND end_at > ?`
		args = append(args, formatInstant(from))
	}
	if !to.IsZero() {
		query += ` AND start_at < ?`
		args = append(args, formatInstant(to))
	}
	query += ` ORDER BY start_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing busy blocks: %w", err)
	}
	defer rows.Close()

	var out []domain.BusyBlock
	for rows.Next() {
		var b domain.BusyBlock
		var start, end string
		if err := rows.Scan(&b.ID, &b.Title, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning busy block: %w", err)
		}
		if b.Start, err = parseInstant(start, r.loc); err != nil {
			return nil, err
		}
		if b.End, err = parseInstant(end, r.loc); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteBusyBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM busy_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting busy block %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("busy block %s: %w", id, ErrNotFound)
	}
	return nil
}
