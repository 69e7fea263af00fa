package jsonfile

import (
	"context"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

// SeasonRepository keeps one tracker document per season directory.
type SeasonRepository struct {
	store documentStore
}

func NewSeasonRepository(root string) *SeasonRepository {
	return &SeasonRepository{store: newDocumentStore(root)}
}

func (r *SeasonRepository) GetTracker(ctx context.Context, year int) (season.Tracker, bool, error) {
	if err := ctx.Err(); err != nil {
		return season.Tracker{}, false, err
	}

	var tracker season.Tracker
	found, err := r.store.read(r.store.seasonPath(year, trackerFile), &tracker)
	if err != nil || !found {
		return season.Tracker{}, false, err
	}
	if tracker.Season == 0 {
		tracker.Season = year
	}
	if tracker.Season != year {
		return season.Tracker{}, false, crerr.Newf("tracker document for %d declares season %d", year, tracker.Season)
	}
	return tracker, true, nil
}

func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.seasons()
}

// LeaderboardRepository keeps the attendance and performance documents next
// to the season tracker.
type LeaderboardRepository struct {
	store documentStore
}

func NewLeaderboardRepository(root string) *LeaderboardRepository {
	return &LeaderboardRepository{store: newDocumentStore(root)}
}

func (r *LeaderboardRepository) GetAttendance(ctx context.Context, season int) (leaderboard.AttendanceBoard, bool, error) {
	if err := ctx.Err(); err != nil {
		return leaderboard.AttendanceBoard{}, false, err
	}

	var board leaderboard.AttendanceBoard
	found, err := r.store.read(r.store.seasonPath(season, attendanceFile), &board)
	if err != nil || !found {
		return leaderboard.AttendanceBoard{}, false, err
	}
	return board, true, nil
}

func (r *LeaderboardRepository) GetPerformance(ctx context.Context, season int) ([]leaderboard.PerformanceEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var entries []leaderboard.PerformanceEntry
	found, err := r.store.read(r.store.seasonPath(season, performanceFile), &entries)
	if err != nil || !found {
		return nil, false, err
	}
	return entries, true, nil
}

// Publisher writes the tracker and both boards of a season through one
// writeAll, so a failed publish leaves the previous documents in place.
type Publisher struct {
	store documentStore
}

func NewPublisher(root string) *Publisher {
	return &Publisher{store: newDocumentStore(root)}
}

func (p *Publisher) Publish(ctx context.Context, snapshot season.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	year := snapshot.Tracker.Season
	attendance := snapshot.Attendance
	if attendance.Players == nil {
		attendance.Players = []leaderboard.AttendanceEntry{}
	}
	performance := snapshot.Performance
	if performance == nil {
		performance = []leaderboard.PerformanceEntry{}
	}

	return p.store.writeAll([]document{
		{path: p.store.seasonPath(year, trackerFile), value: snapshot.Tracker},
		{path: p.store.seasonPath(year, attendanceFile), value: attendance},
		{path: p.store.seasonPath(year, performanceFile), value: performance},
	})
}

// RosterRepository reads the shared roster.json. A missing file is an empty
// roster.
type RosterRepository struct {
	path  string
	store documentStore
}

func NewRosterRepository(root string) *RosterRepository {
	store := newDocumentStore(root)
	return &RosterRepository{path: filepath.Join(store.root, rosterFile), store: store}
}

func (r *RosterRepository) ListProfiles(ctx context.Context) ([]roster.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var profiles []roster.Profile
	if _, err := r.store.read(r.path, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
