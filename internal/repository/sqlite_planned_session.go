package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
)

// SQLitePlannedSessionRepo implements PlannedSessionRepo using a SQLite database.
// Dates are read back as midnight in loc and instants are converted into loc.
type SQLitePlannedSessionRepo struct {
	db  db.DBTX
	loc *time.Location
}

func NewSQLitePlannedSessionRepo(conn db.DBTX, loc *time.Location) *SQLitePlannedSessionRepo {
	return &SQLitePlannedSessionRepo{db: conn, loc: locationOr(loc)}
}

const sessionColumns = `id, assessment_title, assessment_due_date, milestone_title, subtask_title,
	notes, date, start_at, end_at, duration_min, status, risk_level, version, blocked_by,
	rolled_from_date, created_at, updated_at`

const upsertSessionSQL = `INSERT INTO planned_sessions (` + sessionColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		assessment_title = excluded.assessment_title,
		assessment_due_date = excluded.assessment_due_date,
		milestone_title = excluded.milestone_title,
		subtask_title = excluded.subtask_title,
		notes = excluded.notes,
		date = excluded.date,
		start_at = excluded.start_at,
		end_at = excluded.end_at,
		duration_min = excluded.duration_min,
		status = excluded.status,
		risk_level = excluded.risk_level,
		version = excluded.version,
		blocked_by = excluded.blocked_by,
		rolled_from_date = excluded.rolled_from_date,
		updated_at = excluded.updated_at`

// ReplaceAll swaps the whole plan. Callers run it inside a transaction so a
// failed insert leaves the previous plan intact.
func (r *SQLitePlannedSessionRepo) ReplaceAll(ctx context.Context, sessions []domain.PlannedSession) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM planned_sessions`); err != nil {
		return fmt.Errorf("clearing planned sessions: %w", err)
	}
	return r.UpsertMany(ctx, sessions)
}

func (r *SQLitePlannedSessionRepo) UpsertMany(ctx context.Context, sessions []domain.PlannedSession) error {
	for _, s := range sessions {
		if err := r.write(ctx, &s); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePlannedSessionRepo) write(ctx context.Context, s *domain.PlannedSession) error {
	stampTimes(&s.CreatedAt, &s.UpdatedAt)
	_, err := r.db.ExecContext(ctx, upsertSessionSQL,
		s.ID,
		s.AssessmentTitle,
		formatDate(s.AssessmentDueDate),
		s.MilestoneTitle,
		s.SubtaskTitle,
		s.Notes,
		s.Date.Format(domain.DateLayout),
		formatInstant(s.Start),
		formatInstant(s.End),
		s.DurationMin,
		string(s.Status),
		string(s.RiskLevel),
		s.Version,
		s.BlockedBy,
		nullableTimeToString(s.RolledFromDate, domain.DateLayout),
		formatInstant(s.CreatedAt),
		formatInstant(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("writing planned session %s: %w", s.ID, err)
	}
	return nil
}

// List returns sessions ordered by start time.
func (r *SQLitePlannedSessionRepo) List(ctx context.Context, f SessionFilter) ([]domain.PlannedSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM planned_sessions WHERE 1=1`
	var args []any
	if !f.From.IsZero() {
		query += ` AND date >= ?`
		args = append(args, f.From.Format(domain.DateLayout))
	}
	if !f.To.IsZero() {
		query += ` AND date <= ?`
		args = append(args, f.To.Format(domain.DateLayout))
	}
	if len(f.Statuses) > 0 {
		query += ` AND status IN (?` + strings.Repeat(", ?", len(f.Statuses)-1) + `)`
		for _, st := range f.Statuses {
			args = append(args, string(st))
		}
	}
	query += ` ORDER BY start_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing planned sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.PlannedSession
	for rows.Next() {
		s, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLitePlannedSessionRepo) GetByID(ctx context.Context, id string) (*domain.PlannedSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM planned_sessions WHERE id = ?`, id)
	s, err := r.scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("planned session %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &s, nil
}

// Update rewrites an existing session. Unknown ids are ErrNotFound.
func (r *SQLitePlannedSessionRepo) Update(ctx context.Context, s *domain.PlannedSession) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM planned_sessions WHERE id = ?`, s.ID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("planned session %s: %w", s.ID, ErrNotFound)
		}
		return fmt.Errorf("checking planned session %s: %w", s.ID, err)
	}
	return r.write(ctx, s)
}

func (r *SQLitePlannedSessionRepo) DeleteByMilestone(ctx context.Context, assessmentTitle, milestoneTitle string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM planned_sessions WHERE assessment_title = ? AND milestone_title = ?`,
		assessmentTitle, milestoneTitle)
	if err != nil {
		return 0, fmt.Errorf("deleting sessions for milestone %q: %w", milestoneTitle, err)
	}
	return res.RowsAffected()
}

func (r *SQLitePlannedSessionRepo) scan(s scanner) (domain.PlannedSession, error) {
	var ps domain.PlannedSession
	var assessmentDue, rolled sql.NullString
	var date, start, end, status, risk, created, updated string
	if err := s.Scan(
		&ps.ID,
		&ps.AssessmentTitle,
		&assessmentDue,
		&ps.MilestoneTitle,
		&ps.SubtaskTitle,
		&ps.Notes,
		&date,
		&start,
		&end,
		&ps.DurationMin,
		&status,
		&risk,
		&ps.Version,
		&ps.BlockedBy,
		&rolled,
		&created,
		&updated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ps, err
		}
		return ps, fmt.Errorf("scanning planned session: %w", err)
	}

	var err error
	if ps.Status, err = domain.ParseSessionStatus(status); err != nil {
		return ps, fmt.Errorf("planned session %s: %w", ps.ID, err)
	}
	if ps.RiskLevel, err = domain.ParseRiskLevel(risk); err != nil {
		return ps, fmt.Errorf("planned session %s: %w", ps.ID, err)
	}
	if ps.Date, err = parseDate(sql.NullString{String: date, Valid: true}, r.loc); err != nil {
		return ps, err
	}
	if ps.AssessmentDueDate, err = parseDate(assessmentDue, r.loc); err != nil {
		return ps, err
	}
	ps.RolledFromDate = parseNullableTime(rolled, domain.DateLayout, r.loc)
	if ps.Start, err = parseInstant(start, r.loc); err != nil {
		return ps, err
	}
	if ps.End, err = parseInstant(end, r.loc); err != nil {
		return ps, err
	}
	if ps.CreatedAt, err = parseInstant(created, r.loc); err != nil {
		return ps, err
	}
	if ps.UpdatedAt, err = parseInstant(updated, r.loc); err != nil {
		return ps, err
	}
	return ps, nil
}
