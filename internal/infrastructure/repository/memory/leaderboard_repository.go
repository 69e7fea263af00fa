package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu          sync.RWMutex
	attendance  map[int]leaderboard.AttendanceBoard
	performance map[int][]leaderboard.PerformanceEntry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{
		attendance:  make(map[int]leaderboard.AttendanceBoard),
		performance: make(map[int][]leaderboard.PerformanceEntry),
	}
}

func (r *LeaderboardRepository) GetAttendance(_ context.Context, season int) (leaderboard.AttendanceBoard, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	board, ok := r.attendance[season]
	if !ok {
		return leaderboard.AttendanceBoard{}, false, nil
	}

	return board.Clone(), true, nil
}

// SaveAttendance stores a board on its own, for fixtures that start from an
// existing board. Publisher is the write path for whole seasons.
func (r *LeaderboardRepository) SaveAttendance(_ context.Context, season int, board leaderboard.AttendanceBoard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attendance[season] = board.Clone()
	return nil
}

func (r *LeaderboardRepository) GetPerformance(_ context.Context, season int) ([]leaderboard.PerformanceEntry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.performance[season]
	if !ok {
		return nil, false, nil
	}

	return leaderboard.ClonePerformance(entries), true, nil
}

func (r *LeaderboardRepository) SavePerformance(_ context.Context, season int, entries []leaderboard.PerformanceEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.performance[season] = leaderboard.ClonePerformance(entries)
	return nil
}
