package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

func TestRosterRepository_ListReturnsCopies(t *testing.T) {
	repo := NewRosterRepository([]roster.Profile{{Name: "Ana", Position: []string{"FWD"}}})

	first, err := repo.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	first[0].Position[0] = "GK"

	second, _ := repo.ListProfiles(context.Background())
	if second[0].Position[0] != "FWD" {
		t.Fatalf("caller mutation leaked into the roster: %+v", second[0])
	}
}

func TestPublisher_WritesTrackerAndBoards(t *testing.T) {
	ctx := context.Background()
	trackers := NewSeasonRepository()
	boards := NewLeaderboardRepository()
	publisher := NewPublisher(trackers, boards)

	tracker := season.New(2025)
	tracker.TotalGoals = 3
	snapshot := season.Snapshot{
		Tracker:     tracker,
		Attendance:  leaderboard.AttendanceBoard{Players: []leaderboard.AttendanceEntry{{Name: "Ana", TotalGames: 1}}},
		Performance: []leaderboard.PerformanceEntry{{ID: 1, Name: "Ana", Position: []string{"FWD"}}},
	}
	if err := publisher.Publish(ctx, snapshot); err != nil {
		t.Fatalf("publish: %v", err)
	}
	snapshot.Performance[0].Position[0] = "GK"

	got, found, err := trackers.GetTracker(ctx, 2025)
	if err != nil || !found || got.TotalGoals != 3 {
		t.Fatalf("unexpected tracker: found=%v err=%v tracker=%+v", found, err, got)
	}
	board, found, _ := boards.GetAttendance(ctx, 2025)
	if !found || len(board.Players) != 1 || board.Players[0].Name != "Ana" {
		t.Fatalf("unexpected attendance: found=%v board=%+v", found, board)
	}
	perf, found, _ := boards.GetPerformance(ctx, 2025)
	if !found || len(perf) != 1 || perf[0].Position[0] != "FWD" {
		t.Fatalf("unexpected performance: found=%v perf=%+v", found, perf)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	next := season.New(2025)
	if err := publisher.Publish(cancelled, season.Snapshot{Tracker: next}); err == nil {
		t.Fatalf("expected cancelled publish to fail")
	}
	if got, _, _ := trackers.GetTracker(ctx, 2025); got.TotalGoals != 3 {
		t.Fatalf("cancelled publish changed the tracker: %+v", got)
	}
}
