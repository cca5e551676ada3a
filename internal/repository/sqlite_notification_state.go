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

// SQLiteNotificationStateRepo implements NotificationStateRepo using a SQLite database.
type SQLiteNotificationStateRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationStateRepo(conn db.DBTX) *SQLiteNotificationStateRepo {
	return &SQLiteNotificationStateRepo{db: conn}
}

func (r *SQLiteNotificationStateRepo) Get(ctx context.Context, id string) (*domain.NotificationState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, dismissed_at, snoozed_until FROM notification_states WHERE id = ?`, id)
	st, err := scanNotificationState(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification state %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &st, nil
}

func (r *SQLiteNotificationStateRepo) List(ctx context.Context) ([]domain.NotificationState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, dismissed_at, snoozed_until FROM notification_states ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing notification states: %w", err)
	}
	defer rows.Close()

	var out []domain.NotificationState
	for rows.Next() {
		st, err := scanNotificationState(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *SQLiteNotificationStateRepo) Upsert(ctx context.Context, st domain.NotificationState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_states (id, dismissed_at, snoozed_until) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET dismissed_at = excluded.dismissed_at, snoozed_until = excluded.snoozed_until`,
		st.ID,
		nullableTimeToString(st.DismissedAt, time.RFC3339),
		nullableTimeToString(st.SnoozedUntil, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting notification state %s: %w", st.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNotificationState(s scanner) (domain.NotificationState, error) {
	var st domain.NotificationState
	var dismissed, snoozed sql.NullString
	if err := s.Scan(&st.ID, &dismissed, &snoozed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return st, err
		}
		return st, fmt.Errorf("scanning notification state: %w", err)
	}
	st.DismissedAt = parseNullableTime(dismissed, time.RFC3339, time.UTC)
	st.SnoozedUntil = parseNullableTime(snoozed, time.RFC3339, time.UTC)
	return st, nil
}
