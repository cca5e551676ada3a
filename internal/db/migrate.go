package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/simibol/planpoint/internal/domain"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every start.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyEnumValues(db); err != nil {
		return fmt.Errorf("normalizing legacy session values: %w", err)
	}
	return nil
}

// migrateLegacyEnumValues rewrites status and risk spellings written by
// older clients onto the canonical values. Values that match no known alias
// are left alone and surface as errors when read.
func migrateLegacyEnumValues(db *sql.DB) error {
	ctx := context.Background()

	type fix struct {
		id, status, risk string
	}
	rows, err := db.QueryContext(ctx, `SELECT id, status, risk_level FROM planned_sessions
		WHERE status NOT IN ('planned','in-progress','completed','todo')
		   OR risk_level NOT IN ('on-track','warning','late','at-risk')`)
	if err != nil {
		return fmt.Errorf("listing legacy sessions: %w", err)
	}
	var fixes []fix
	for rows.Next() {
		var f fix
		if err := rows.Scan(&f.id, &f.status, &f.risk); err != nil {
			rows.Close()
			return err
		}
		fixes = append(fixes, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, f := range fixes {
		status, risk := f.status, f.risk
		if s, err := domain.ParseSessionStatus(f.status); err == nil {
			status = string(s)
		}
		if r, err := domain.ParseRiskLevel(f.risk); err == nil {
			risk = string(r)
		}
		if status == f.status && risk == f.risk {
			continue
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE planned_sessions SET status = ?, risk_level = ? WHERE id = ?`, status, risk, f.id); err != nil {
			return fmt.Errorf("updating session %s: %w", f.id, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL UNIQUE,
		due_date   TEXT,
		weight     REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id                  TEXT PRIMARY KEY,
		title               TEXT NOT NULL,
		estimate_hours      REAL NOT NULL DEFAULT 0,
		target_date         TEXT,
		assessment_title    TEXT NOT NULL DEFAULT '',
		assessment_due_date TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL,
		UNIQUE (assessment_title, title)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_assessment ON milestones(assessment_title)`,

	`CREATE TABLE IF NOT EXISTS busy_blocks (
		id       TEXT PRIMARY KEY,
		title    TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL,
		end_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_busy_blocks_start ON busy_blocks(start_at)`,

	`CREATE TABLE IF NOT EXISTS planner_preferences (
		id                  TEXT PRIMARY KEY DEFAULT 'default',
		daily_cap_hours     REAL,
		min_session_minutes INTEGER,
		max_session_minutes INTEGER,
		focus_block_minutes INTEGER,
		allow_weekends      INTEGER,
		start_hour          INTEGER,
		end_hour            INTEGER
	)`,

	// Absent columns mean "use the default".
	`INSERT OR IGNORE INTO planner_preferences (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS planned_sessions (
		id                  TEXT PRIMARY KEY,
		assessment_title    TEXT NOT NULL DEFAULT '',
		assessment_due_date TEXT,
		milestone_title     TEXT NOT NULL DEFAULT '',
		subtask_title       TEXT NOT NULL DEFAULT '',
		notes               TEXT NOT NULL DEFAULT '',
		date                TEXT NOT NULL,
		start_at            TEXT NOT NULL,
		end_at              TEXT NOT NULL,
		duration_min        INTEGER NOT NULL CHECK(duration_min > 0),
		status              TEXT NOT NULL DEFAULT 'planned',
		risk_level          TEXT NOT NULL DEFAULT 'on-track',
		version             INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_planned_sessions_date ON planned_sessions(date)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_sessions_milestone ON planned_sessions(assessment_title, milestone_title)`,

	// Chunk ordering and reschedule provenance.
	`ALTER TABLE planned_sessions ADD COLUMN blocked_by TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE planned_sessions ADD COLUMN rolled_from_date TEXT`,

	`CREATE TABLE IF NOT EXISTS notification_states (
		id            TEXT PRIMARY KEY,
		dismissed_at  TEXT,
		snoozed_until TEXT
	)`,
}
