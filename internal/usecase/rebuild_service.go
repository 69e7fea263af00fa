package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
	"github.com/riskibarqy/footy-tracker/internal/platform/logging"
)

const (
	rebuildStatusSuccess = "success"
	rebuildStatusFailed  = "failed"
	rebuildStatusSkipped = "skipped"

	maxRebuildWorkers = 16
)

type seasonRefresher interface {
	RefreshLeaderboards(ctx context.Context, year int) (RecordResult, error)
}

type RebuildInput struct {
	// Seasons defaults to every stored season when empty.
	Seasons    []int
	MaxWorkers int
}

type RebuildResult struct {
	SeasonCount  int                   `json:"seasonCount"`
	SuccessCount int                   `json:"successCount"`
	FailedCount  int                   `json:"failedCount"`
	SkippedCount int                   `json:"skippedCount"`
	WorkerCount  int                   `json:"workerCount"`
	Seasons      []RebuildSeasonResult `json:"seasons"`
}

type RebuildSeasonResult struct {
	Season             int    `json:"season"`
	Status             string `json:"status"`
	Matches            int    `json:"matches"`
	Warnings           int    `json:"warnings"`
	AttendancePlayers  int    `json:"attendancePlayers"`
	PerformancePlayers int    `json:"performancePlayers"`
	DurationMs         int64  `json:"durationMs"`
	Message            string `json:"message,omitempty"`
}

// RebuildService refreshes the leaderboards of many seasons on a bounded
// worker pool. Seasons are independent, so one failure never stops the rest.
type RebuildService struct {
	trackerRepo    season.Repository
	refresher      seasonRefresher
	defaultWorkers int
	logger         *logging.Logger
}

func NewRebuildService(trackerRepo season.Repository, refresher seasonRefresher, defaultWorkers int, logger *logging.Logger) *RebuildService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RebuildService{
		trackerRepo:    trackerRepo,
		refresher:      refresher,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *RebuildService) RebuildAll(ctx context.Context, input RebuildInput) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RebuildService.RebuildAll")
	defer span.End()

	seasons, err := s.resolveSeasons(ctx, input.Seasons)
	if err != nil {
		return RebuildResult{}, err
	}

	workers := input.MaxWorkers
	if workers <= 0 {
		workers = s.defaultWorkers
	}
	workerCount := normalizeRebuildWorkerCount(workers, len(seasons))
	result := RebuildResult{
		SeasonCount: len(seasons),
		WorkerCount: workerCount,
		Seasons:     make([]RebuildSeasonResult, 0, len(seasons)),
	}
	if len(seasons) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	rows := make(chan RebuildSeasonResult, len(seasons))
	var successCount, failedCount, skippedCount atomic.Int32

	var workersWG sync.WaitGroup
	for _, year := range seasons {
		year := year
		workersWG.Add(1)
		if err := pool.Submit(func() {
			defer workersWG.Done()

			row := s.rebuildSeason(ctx, year)
			switch row.Status {
			case rebuildStatusSuccess:
				successCount.Add(1)
			case rebuildStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workersWG.Done()
			return RebuildResult{}, fmt.Errorf("submit season %d to worker pool: %w", year, err)
		}
	}

	workersWG.Wait()
	close(rows)

	for row := range rows {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].Season < result.Seasons[j].Season
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "season rebuild finished",
		"seasons", result.SeasonCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
		"workers", result.WorkerCount,
	)
	return result, nil
}

func (s *RebuildService) rebuildSeason(ctx context.Context, year int) RebuildSeasonResult {
	start := time.Now()
	row := RebuildSeasonResult{Season: year}

	refreshed, err := s.refresher.RefreshLeaderboards(ctx, year)
	row.DurationMs = time.Since(start).Milliseconds()
	switch {
	case errors.Is(err, ErrNotFound):
		row.Status = rebuildStatusSkipped
		row.Message = "season has no tracker"
		return row
	case err != nil:
		row.Status = rebuildStatusFailed
		row.Message = err.Error()
		s.logger.ErrorContext(ctx, "season rebuild failed", "season", year, "error", err)
		return row
	}

	row.Status = rebuildStatusSuccess
	row.Matches = refreshed.MatchCount
	row.Warnings = len(refreshed.Warnings)
	row.AttendancePlayers = refreshed.AttendancePlayers
	row.PerformancePlayers = refreshed.PerformancePlayers
	return row
}

func (s *RebuildService) resolveSeasons(ctx context.Context, requested []int) ([]int, error) {
	if len(requested) == 0 {
		stored, err := s.trackerRepo.ListSeasons(ctx)
		if err != nil {
			return nil, fmt.Errorf("list seasons: %w", err)
		}
		requested = stored
	}

	seen := make(map[int]struct{}, len(requested))
	out := make([]int, 0, len(requested))
	for _, year := range requested {
		if err := season.ValidateYear(year); err != nil {
			return nil, classifyDomainError(err)
		}
		if _, ok := seen[year]; ok {
			continue
		}
		seen[year] = struct{}{}
		out = append(out, year)
	}
	sort.Ints(out)
	return out, nil
}

func normalizeRebuildWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = 1
	}
	if workers > maxRebuildWorkers {
		workers = maxRebuildWorkers
	}
	if tasks > 0 && workers > tasks {
		workers = tasks
	}
	return workers
}
