package memory

import (
	"context"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

// Publisher writes a season snapshot into a SeasonRepository and a
// LeaderboardRepository while holding both locks, so readers never see a
// tracker next to boards from another version.
type Publisher struct {
	trackers *SeasonRepository
	boards   *LeaderboardRepository
}

func NewPublisher(trackers *SeasonRepository, boards *LeaderboardRepository) *Publisher {
	return &Publisher{trackers: trackers, boards: boards}
}

func (p *Publisher) Publish(ctx context.Context, snapshot season.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	year := snapshot.Tracker.Season
	tracker := snapshot.Tracker.Clone()
	attendance := snapshot.Attendance.Clone()
	performance := leaderboard.ClonePerformance(snapshot.Performance)

	p.trackers.mu.Lock()
	defer p.trackers.mu.Unlock()
	p.boards.mu.Lock()
	defer p.boards.mu.Unlock()

	p.trackers.items[year] = tracker
	p.boards.attendance[year] = attendance
	p.boards.performance[year] = performance
	return nil
}
