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

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db  db.DBTX
	loc *time.Location
}

func NewSQLiteMilestoneRepo(conn db.DBTX, loc *time.Location) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn, loc: locationOr(loc)}
}

const milestoneColumns = `id, title, estimate_hours, target_date, assessment_title,
	assessment_due_date, created_at, updated_at`

// Upsert inserts the milestone or updates the row with the same
// (assessment, title) pair, keeping its id.
func (r *SQLiteMilestoneRepo) Upsert(ctx context.Context, m *domain.Milestone) error {
	stampTimes(&m.CreatedAt, &m.UpdatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (`+milestoneColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(assessment_title, title) DO UPDATE SET
			estimate_hours = excluded.estimate_hours,
			target_date = excluded.target_date,
			assessment_due_date = excluded.assessment_due_date,
			updated_at = excluded.updated_at`,
		m.ID,
		m.Title,
		m.EstimateHours,
		nullableTimeToString(m.TargetDate, domain.DateLayout),
		m.AssessmentTitle,
		formatDate(m.AssessmentDueDate),
		formatInstant(m.CreatedAt),
		formatInstant(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting milestone %q: %w", m.Title, err)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	m, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("milestone %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones ORDER BY assessment_title, target_date IS NULL, target_date, title`)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("milestone %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteMilestoneRepo) scan(s scanner) (domain.Milestone, error) {
	var m domain.Milestone
	var target, assessmentDue sql.NullString
	var created, updated string
	if err := s.Scan(
		&m.ID,
		&m.Title,
		&m.EstimateHours,
		&target,
		&m.AssessmentTitle,
		&assessmentDue,
		&created,
		&updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m, err
		}
		return m, fmt.Errorf("scanning milestone: %w", err)
	}

	m.TargetDate = parseNullableTime(target, domain.DateLayout, r.loc)
	var err error
	if m.AssessmentDueDate, err = parseDate(assessmentDue, r.loc); err != nil {
		return m, err
	}
	if m.CreatedAt, err = parseInstant(created, r.loc); err != nil {
		return m, err
	}
	if m.UpdatedAt, err = parseInstant(updated, r.loc); err != nil {
		return m, err
	}
	return m, nil
}
