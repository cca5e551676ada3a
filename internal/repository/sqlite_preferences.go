package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo over the single
// 'default' row of planner_preferences. NULL columns are absent fields.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (domain.PreferencesInput, error) {
	row := r.db.QueryRowContext(ctx, `SELECT daily_cap_hours, min_session_minutes, max_session_minutes,
		focus_block_minutes, allow_weekends, start_hour, end_hour
		FROM planner_preferences WHERE id = 'default'`)

	var (
		capHours                    sql.NullFloat64
		minSession, maxSession      sql.NullInt64
		focus, weekends, start, end sql.NullInt64
	)
	if err := row.Scan(&capHours, &minSession, &maxSession, &focus, &weekends, &start, &end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PreferencesInput{}, fmt.Errorf("planner preferences: %w", ErrNotFound)
		}
		return domain.PreferencesInput{}, fmt.Errorf("scanning planner preferences: %w", err)
	}

	var p domain.PreferencesInput
	if capHours.Valid {
		p.DailyCapHours = domain.Ptr(capHours.Float64)
	}
	p.MinSessionMinutes = nullInt(minSession)
	p.MaxSessionMinutes = nullInt(maxSession)
	p.FocusBlockMinutes = nullInt(focus)
	if weekends.Valid {
		p.AllowWeekends = domain.Ptr(intToBool(int(weekends.Int64)))
	}
	p.StartHour = nullInt(start)
	p.EndHour = nullInt(end)
	return p, nil
}

// Save overwrites the stored preferences; nil fields are stored as absent.
func (r *SQLitePreferencesRepo) Save(ctx context.Context, p domain.PreferencesInput) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO planner_preferences (id, daily_cap_hours,
		min_session_minutes, max_session_minutes, focus_block_minutes, allow_weekends, start_hour, end_hour)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			daily_cap_hours = excluded.daily_cap_hours,
			min_session_minutes = excluded.min_session_minutes,
			max_session_minutes = excluded.max_session_minutes,
			focus_block_minutes = excluded.focus_block_minutes,
			allow_weekends = excluded.allow_weekends,
			start_hour = excluded.start_hour,
			end_hour = excluded.end_hour`,
		nullableFloatToValue(p.DailyCapHours),
		nullableIntToValue(p.MinSessionMinutes),
		nullableIntToValue(p.MaxSessionMinutes),
		nullableIntToValue(p.FocusBlockMinutes),
		nullableBoolToValue(p.AllowWeekends),
		nullableIntToValue(p.StartHour),
		nullableIntToValue(p.EndHour),
	)
	if err != nil {
		return fmt.Errorf("saving planner preferences: %w", err)
	}
	return nil
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return domain.Ptr(int(v.Int64))
}
