package postgres

import (
	"context"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

// Publisher upserts the tracker and both boards of a season in a single
// transaction.
type Publisher struct {
	docs documentStore
}

func NewPublisher(db *sqlx.DB, breaker *resilience.Breaker) *Publisher {
	return &Publisher{docs: documentStore{db: db, breaker: breaker}}
}

func (p *Publisher) Publish(ctx context.Context, snapshot season.Snapshot) error {
	docs, err := snapshotDocuments(snapshot)
	if err != nil {
		return err
	}
	return p.docs.putAll(ctx, snapshot.Tracker.Season, docs)
}

// snapshotDocuments encodes a snapshot before any statement runs, so an
// encoding failure never opens a transaction.
func snapshotDocuments(snapshot season.Snapshot) ([]seasonDocument, error) {
	attendance := snapshot.Attendance
	if attendance.Players == nil {
		attendance.Players = []leaderboard.AttendanceEntry{}
	}
	performance := snapshot.Performance
	if performance == nil {
		performance = []leaderboard.PerformanceEntry{}
	}

	values := []struct {
		kind  string
		value any
	}{
		{kind: documentKindTracker, value: snapshot.Tracker},
		{kind: documentKindAttendance, value: attendance},
		{kind: documentKindPerformance, value: performance},
	}

	out := make([]seasonDocument, 0, len(values))
	for _, v := range values {
		payload, err := sonic.Marshal(v.value)
		if err != nil {
			return nil, crerr.Wrapf(err, "encode %s document season=%d", v.kind, snapshot.Tracker.Season)
		}
		out = append(out, seasonDocument{kind: v.kind, payload: payload})
	}
	return out, nil
}
