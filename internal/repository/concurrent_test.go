package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/simibol/planpoint/internal/db"
	"github.com/simibol/planpoint/internal/domain"
	"github.com/simibol/planpoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "concurrent_test.db"))
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// TestConcurrentAccess_ReadDuringPlanApply checks that readers listing the plan
// while it is being replaced see either the old or the new plan, never a mix.
func TestConcurrentAccess_ReadDuringPlanApply(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	uow := db.NewSQLiteUnitOfWork(database)
	reader := NewSQLitePlannedSessionRepo(database, time.UTC)

	plan := func(version int64, n int) []domain.PlannedSession {
		out := make([]domain.PlannedSession, n)
		for i := range out {
			start := time.Date(2025, 6, 16+i%5, 9, 0, 0, 0, time.UTC)
			s := testutil.NewTestSession(fmt.Sprintf("v%d-%d", version, i), start, 60)
			s.Version = version
			out[i] = *s
		}
		return out
	}

	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePlannedSessionRepo(tx, time.UTC).ReplaceAll(ctx, plan(1, 10))
	}))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for v := int64(2); v <= 11; v++ {
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return NewSQLitePlannedSessionRepo(tx, time.UTC).ReplaceAll(ctx, plan(v, 10))
			})
			if err != nil {
				t.Errorf("writer: apply version %d: %v", v, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				sessions, err := reader.List(ctx, SessionFilter{})
				if err != nil {
					t.Errorf("reader %d: list: %v", id, err)
					return
				}
				if len(sessions) != 10 {
					t.Errorf("reader %d: expected 10 sessions, got %d", id, len(sessions))
					return
				}
				for _, s := range sessions[1:] {
					if s.Version != sessions[0].Version {
						t.Errorf("reader %d: mixed plan versions %d and %d", id, sessions[0].Version, s.Version)
						return
					}
				}
			}
		}(r)
	}

	wg.Wait()

	final, err := reader.List(ctx, SessionFilter{})
	require.NoError(t, err)
	require.Len(t, final, 10)
	assert.Equal(t, int64(11), final[0].Version)
}
