package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

type SeasonRepository struct {
	docs documentStore
}

func NewSeasonRepository(db *sqlx.DB, breaker *resilience.Breaker) *SeasonRepository {
	return &SeasonRepository{docs: documentStore{db: db, breaker: breaker}}
}

func (r *SeasonRepository) GetTracker(ctx context.Context, year int) (season.Tracker, bool, error) {
	var tracker season.Tracker
	found, err := r.docs.get(ctx, year, documentKindTracker, &tracker)
	if err != nil || !found {
		return season.Tracker{}, false, err
	}
	tracker.Season = year
	return tracker, true, nil
}

func (r *SeasonRepository) ListSeasons(ctx context.Context) ([]int, error) {
	return r.docs.seasons(ctx, documentKindTracker)
}
