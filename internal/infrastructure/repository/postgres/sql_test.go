package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation season_documents does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isUnnamedPreparedStatementMissing(fakeErr("pq: relation roster_profiles does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestWithStatementRetry(t *testing.T) {
	t.Run("retries once after pooler reset", func(t *testing.T) {
		calls := 0
		err := withStatementRetry(context.Background(), nil, "get document", func(context.Context) error {
			calls++
			if calls == 1 {
				return fakeErr("pq: unnamed prepared statement does not exist (26000)")
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Fatalf("expected success on retry, calls=%d err=%v", calls, err)
		}
	})

	t.Run("keeps no rows unwrapped", func(t *testing.T) {
		err := withStatementRetry(context.Background(), nil, "get document", func(context.Context) error {
			return sql.ErrNoRows
		})
		if !isNotFound(err) {
			t.Fatalf("expected no rows, got %v", err)
		}
	})

	t.Run("wraps other errors", func(t *testing.T) {
		boom := errors.New("connection refused")
		err := withStatementRetry(context.Background(), nil, "save document", func(context.Context) error {
			return boom
		})
		if !errors.Is(err, boom) || err.Error() != "save document: connection refused" {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestWithStatementRetry_BreakerIgnoresNoRows(t *testing.T) {
	breaker := NewBreaker(resilience.BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = withStatementRetry(ctx, breaker, "get document", func(context.Context) error { return sql.ErrNoRows })
	}
	if state := breaker.State(); state != resilience.StateClosed {
		t.Fatalf("expected closed breaker after missing rows, got %s", state)
	}

	_ = withStatementRetry(ctx, breaker, "get document", func(context.Context) error { return fakeErr("connection refused") })
	calls := 0
	err := withStatementRetry(ctx, breaker, "get document", func(context.Context) error { calls++; return nil })
	if !errors.Is(err, resilience.ErrCircuitOpen) || calls != 0 {
		t.Fatalf("expected open breaker to short circuit, err=%v calls=%d", err, calls)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestRosterProfileFromRow(t *testing.T) {
	row := rosterProfileTableModel{
		Name:         "Cy",
		Availability: sql.NullString{String: " MIDWEEK ", Valid: true},
		Position:     []byte(`"GK"`),
	}
	got := rosterProfileFromRow(row)
	if got.Availability != "MIDWEEK" || got.Position != nil {
		t.Fatalf("unexpected profile: %+v", got)
	}

	row.Position = []byte(`["GK","DEF"]`)
	if got := rosterProfileFromRow(row); len(got.Position) != 2 {
		t.Fatalf("expected list position, got %+v", got)
	}
}
