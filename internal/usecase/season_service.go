package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/match"
	"github.com/riskibarqy/footy-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
	"github.com/riskibarqy/footy-tracker/internal/platform/lock"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// SeasonService owns the read-modify-write cycle of a season: tracker,
// attendance board and performance board are always written together.
type SeasonService struct {
	trackerRepo     season.Repository
	leaderboardRepo leaderboard.Repository
	rosterRepo      roster.Repository
	publisher       season.Publisher
	logger          *logging.Logger
	locks           lock.KeyedMutex
}

// RecordResult reports what a write did to a season.
type RecordResult struct {
	Season             int             `json:"season"`
	MatchID            string          `json:"matchId,omitempty"`
	Replaced           bool            `json:"replaced"`
	OverwrotePlayed    bool            `json:"overwrotePlayed"`
	Warnings           []match.Warning `json:"warnings"`
	TotalGoals         int             `json:"totalGoals"`
	WeekendGoals       int             `json:"weekendGoals"`
	WeekdayGoals       int             `json:"weekdayGoals"`
	MatchCount         int             `json:"matchCount"`
	AttendancePlayers  int             `json:"attendancePlayers"`
	PerformancePlayers int             `json:"performancePlayers"`
}

type seasonState struct {
	tracker      season.Tracker
	trackerFound bool
	attendance   leaderboard.AttendanceBoard
	performance  []leaderboard.PerformanceEntry
	roster       roster.Directory
}

func NewSeasonService(
	trackerRepo season.Repository,
	leaderboardRepo leaderboard.Repository,
	rosterRepo roster.Repository,
	publisher season.Publisher,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonService{
		trackerRepo:     trackerRepo,
		leaderboardRepo: leaderboardRepo,
		rosterRepo:      rosterRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// RecordMatch inserts or replaces one match in a season and rewrites the
// tracker and both leaderboards. A season without a tracker is created.
func (s *SeasonService) RecordMatch(ctx context.Context, year int, m match.Match) (RecordResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.RecordMatch")
	defer span.End()

	if err := season.ValidateYear(year); err != nil {
		return RecordResult{}, classifyDomainError(err)
	}
	// Reject bad payloads before taking the lock or touching storage.
	if _, err := match.Validate(m); err != nil {
		return RecordResult{}, classifyDomainError(err)
	}

	unlock, err := s.locks.Lock(ctx, strconv.Itoa(year))
	if err != nil {
		return RecordResult{}, fmt.Errorf("lock season %d: %w", year, err)
	}
	defer unlock()

	state, err := s.load(ctx, year)
	if err != nil {
		return RecordResult{}, err
	}
	tracker := state.tracker
	if !state.trackerFound {
		tracker = season.New(year)
	}

	next, upsert, err := season.Upsert(tracker, m)
	if err != nil {
		return RecordResult{}, classifyDomainError(err)
	}

	result, err := s.publish(ctx, next, state)
	if err != nil {
		return RecordResult{}, err
	}
	result.MatchID = upsert.MatchID
	result.Replaced = upsert.Replaced
	result.OverwrotePlayed = upsert.OverwrotePlayed
	result.Warnings = upsert.Warnings
	s.logWarnings(ctx, year, upsert.Warnings)

	s.logger.InfoContext(ctx, "match recorded",
		"season", year,
		"match_id", upsert.MatchID,
		"replaced", upsert.Replaced,
		"warnings", len(upsert.Warnings),
	)
	return result, nil
}

// RefreshLeaderboards recomputes a stored season and reconciles both
// leaderboards against it without changing any match.
func (s *SeasonService) RefreshLeaderboards(ctx context.Context, year int) (RecordResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.RefreshLeaderboards")
	defer span.End()

	if err := season.ValidateYear(year); err != nil {
		return RecordResult{}, classifyDomainError(err)
	}

	unlock, err := s.locks.Lock(ctx, strconv.Itoa(year))
	if err != nil {
		return RecordResult{}, fmt.Errorf("lock season %d: %w", year, err)
	}
	defer unlock()

	state, err := s.load(ctx, year)
	if err != nil {
		return RecordResult{}, err
	}
	if !state.trackerFound {
		return RecordResult{}, fmt.Errorf("%w: season=%d", ErrNotFound, year)
	}

	next, err := season.Recompute(state.tracker)
	if err != nil {
		return RecordResult{}, classifyDomainError(err)
	}

	var warnings []match.Warning
	for _, m := range next.Matches {
		found, err := match.Validate(m)
		if err != nil {
			return RecordResult{}, classifyDomainError(fmt.Errorf("season %d: %w", year, err))
		}
		warnings = append(warnings, found...)
	}

	result, err := s.publish(ctx, next, state)
	if err != nil {
		return RecordResult{}, err
	}
	result.Warnings = warnings
	s.logWarnings(ctx, year, warnings)

	s.logger.InfoContext(ctx, "leaderboards refreshed",
		"season", year,
		"matches", len(next.Matches),
		"attendance_players", result.AttendancePlayers,
		"performance_players", result.PerformancePlayers,
	)
	return result, nil
}

func (s *SeasonService) GetTracker(ctx context.Context, year int) (season.Tracker, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetTracker")
	defer span.End()

	if err := season.ValidateYear(year); err != nil {
		return season.Tracker{}, classifyDomainError(err)
	}

	tracker, exists, err := s.trackerRepo.GetTracker(ctx, year)
	if err != nil {
		return season.Tracker{}, fmt.Errorf("get tracker: %w", err)
	}
	if !exists {
		return season.Tracker{}, fmt.Errorf("%w: season=%d", ErrNotFound, year)
	}

	return tracker, nil
}

func (s *SeasonService) GetAttendance(ctx context.Context, year int) (leaderboard.AttendanceBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetAttendance")
	defer span.End()

	if err := season.ValidateYear(year); err != nil {
		return leaderboard.AttendanceBoard{}, classifyDomainError(err)
	}

	board, exists, err := s.leaderboardRepo.GetAttendance(ctx, year)
	if err != nil {
		return leaderboard.AttendanceBoard{}, fmt.Errorf("get attendance board: %w", err)
	}
	if !exists {
		return leaderboard.AttendanceBoard{}, fmt.Errorf("%w: attendance board season=%d", ErrNotFound, year)
	}

	return board, nil
}

func (s *SeasonService) GetPerformance(ctx context.Context, year int) ([]leaderboard.PerformanceEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.GetPerformance")
	defer span.End()

	if err := season.ValidateYear(year); err != nil {
		return nil, classifyDomainError(err)
	}

	entries, exists, err := s.leaderboardRepo.GetPerformance(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("get performance board: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: performance board season=%d", ErrNotFound, year)
	}

	return entries, nil
}

// load reads the tracker, both boards and the roster concurrently.
func (s *SeasonService) load(ctx context.Context, year int) (seasonState, error) {
	var state seasonState

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		tracker, exists, err := s.trackerRepo.GetTracker(ctx, year)
		if err != nil {
			return fmt.Errorf("get tracker: %w", err)
		}
		state.tracker, state.trackerFound = tracker, exists
		return nil
	})
	p.Go(func(ctx context.Context) error {
		board, _, err := s.leaderboardRepo.GetAttendance(ctx, year)
		if err != nil {
			return fmt.Errorf("get attendance board: %w", err)
		}
		state.attendance = board
		return nil
	})
	p.Go(func(ctx context.Context) error {
		entries, _, err := s.leaderboardRepo.GetPerformance(ctx, year)
		if err != nil {
			return fmt.Errorf("get performance board: %w", err)
		}
		state.performance = entries
		return nil
	})
	p.Go(func(ctx context.Context) error {
		profiles, err := s.rosterRepo.ListProfiles(ctx)
		if err != nil {
			return fmt.Errorf("list roster profiles: %w", err)
		}
		state.roster = roster.NewDirectory(profiles)
		return nil
	})
	if err := p.Wait(); err != nil {
		return seasonState{}, fmt.Errorf("%w: load season %d: %w", ErrDependencyUnavailable, year, err)
	}

	return state, nil
}

// publish aggregates the recomputed tracker, reconciles both boards and hands
// all three documents to the publisher in one call.
func (s *SeasonService) publish(ctx context.Context, tracker season.Tracker, state seasonState) (RecordResult, error) {
	agg := playerstats.Accumulate(tracker.Matches)
	attendance := leaderboard.ReconcileAttendance(state.attendance, agg, state.roster, tracker.Season)
	performance := leaderboard.ReconcilePerformance(state.performance, agg, state.roster)

	snapshot := season.Snapshot{Tracker: tracker, Attendance: attendance, Performance: performance}
	if err := s.publisher.Publish(ctx, snapshot); err != nil {
		return RecordResult{}, fmt.Errorf("%w: publish season %d: %w", ErrDependencyUnavailable, tracker.Season, err)
	}

	return RecordResult{
		Season:             tracker.Season,
		TotalGoals:         tracker.TotalGoals,
		WeekendGoals:       tracker.WeekendGoals,
		WeekdayGoals:       tracker.WeekdayGoals,
		MatchCount:         len(tracker.Matches),
		AttendancePlayers:  len(attendance.Players),
		PerformancePlayers: len(performance),
	}, nil
}

func (s *SeasonService) logWarnings(ctx context.Context, year int, warnings []match.Warning) {
	for _, w := range warnings {
		s.logger.WarnContext(ctx, "match consistency warning",
			"season", year,
			"match_id", w.MatchID,
			"code", w.Code,
			"message", w.Message,
		)
	}
}
