package season

import (
	"context"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
)

type Repository interface {
	GetTracker(ctx context.Context, year int) (Tracker, bool, error)
	ListSeasons(ctx context.Context) ([]int, error)
}

// Snapshot is a tracker together with the two boards derived from it.
type Snapshot struct {
	Tracker     Tracker
	Attendance  leaderboard.AttendanceBoard
	Performance []leaderboard.PerformanceEntry
}

// Publisher stores a snapshot as one unit: after Publish returns, either all
// three documents of the season were replaced or none were.
type Publisher interface {
	Publish(ctx context.Context, snapshot Snapshot) error
}
