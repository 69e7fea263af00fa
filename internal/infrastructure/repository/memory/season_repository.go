package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[int]season.Tracker
}

func NewSeasonRepository(trackers ...season.Tracker) *SeasonRepository {
	items := make(map[int]season.Tracker, len(trackers))
	for _, t := range trackers {
		items[t.Season] = t.Clone()
	}

	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) GetTracker(_ context.Context, year int) (season.Tracker, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[year]
	if !ok {
		return season.Tracker{}, false, nil
	}

	return t.Clone(), true, nil
}

func (r *SeasonRepository) ListSeasons(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.items))
	for year := range r.items {
		out = append(out, year)
	}
	sort.Ints(out)

	return out, nil
}
