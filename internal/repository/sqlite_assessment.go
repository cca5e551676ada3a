package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo using a SQLite database.
// Due dates are calendar days interpreted in loc.
type SQLiteAssessmentRepo struct {
	db  db.DBTX
	loc *time.Location
}

func NewSQLiteAssessmentRepo(conn db.DBTX, loc *time.Location) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn, loc: locationOr(loc)}
}

const assessmentColumns = `id, title, due_date, weight, created_at, updated_at`

// Upsert inserts the assessment or updates the row with the same title.
func (r *SQLiteAssessmentRepo) Upsert(ctx context.Context, a *domain.Assessment) error {
	stampTimes(&a.CreatedAt, &a.UpdatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assessments (`+assessmentColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			due_date = excluded.due_date,
			weight = excluded.weight,
			updated_at = excluded.updated_at`,
		a.ID,
		a.Title,
		formatDate(a.DueDate),
		a.Weight,
		formatInstant(a.CreatedAt),
		formatInstant(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting assessment %q: %w", a.Title, err)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) GetByTitle(ctx context.Context, title string) (*domain.Assessment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE title = ?`, title)
	a, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assessment %q: %w", title, ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAssessmentRepo) List(ctx context.Context) ([]domain.Assessment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assessmentColumns+` FROM assessments ORDER BY due_date IS NULL, due_date, title`)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assessment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteAssessmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assessment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) scan(s scanner) (domain.Assessment, error) {
	var a domain.Assessment
	var due sql.NullString
	var created, updated string
	if err := s.Scan(&a.ID, &a.Title, &due, &a.Weight, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("scanning assessment: %w", err)
	}

	var err error
	if a.DueDate, err = parseDate(due, r.loc); err != nil {
		return a, err
	}
	if a.CreatedAt, err = parseInstant(created, r.loc); err != nil {
		return a, err
	}
	if a.UpdatedAt, err = parseInstant(updated, r.loc); err != nil {
		return a, err
	}
	return a, nil
}
