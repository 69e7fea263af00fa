package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

const (
	documentKindTracker     = "tracker"
	documentKindAttendance  = "attendance"
	documentKindPerformance = "performance"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch matches the error a transaction pooler returns when
// a statement prepared on another backend is reused with different params.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

// NewBreaker guards the database; missing rows are answers, not outages.
func NewBreaker(cfg resilience.BreakerConfig) *resilience.Breaker {
	cfg.IsFailure = func(err error) bool {
		return !isNotFound(err) && !errors.Is(err, context.Canceled)
	}
	return resilience.NewBreaker(cfg)
}

// withStatementRetry runs fn again once when the pooler dropped the prepared
// statement between parse and execute.
func withStatementRetry(ctx context.Context, breaker *resilience.Breaker, op string, fn func(context.Context) error) error {
	err := breaker.Do(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			err = fn(ctx)
		}
		return err
	})
	if err != nil && !isNotFound(err) {
		return crerr.Wrap(err, op)
	}
	return err
}
