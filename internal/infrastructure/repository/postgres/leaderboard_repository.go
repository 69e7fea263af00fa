package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

type LeaderboardRepository struct {
	docs documentStore
}

func NewLeaderboardRepository(db *sqlx.DB, breaker *resilience.Breaker) *LeaderboardRepository {
	return &LeaderboardRepository{docs: documentStore{db: db, breaker: breaker}}
}

func (r *LeaderboardRepository) GetAttendance(ctx context.Context, season int) (leaderboard.AttendanceBoard, bool, error) {
	var board leaderboard.AttendanceBoard
	found, err := r.docs.get(ctx, season, documentKindAttendance, &board)
	if err != nil || !found {
		return leaderboard.AttendanceBoard{}, false, err
	}
	return board, true, nil
}

func (r *LeaderboardRepository) GetPerformance(ctx context.Context, season int) ([]leaderboard.PerformanceEntry, bool, error) {
	var entries []leaderboard.PerformanceEntry
	found, err := r.docs.get(ctx, season, documentKindPerformance, &entries)
	if err != nil || !found {
		return nil, false, err
	}
	return entries, true, nil
}
