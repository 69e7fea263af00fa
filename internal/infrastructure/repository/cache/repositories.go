package cache

import (
	"context"

	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	basecache "github.com/riskibarqy/footy-tracker/internal/platform/cache"
)

const rosterProfilesKey = "roster:profiles"

// RosterRepository caches the roster, which changes far less often than
// matches are recorded.
type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) ListProfiles(ctx context.Context) ([]roster.Profile, error) {
	items, err := basecache.Load(ctx, r.cache, rosterProfilesKey, func(ctx context.Context) ([]roster.Profile, error) {
		items, err := r.next.ListProfiles(ctx)
		if err != nil {
			return nil, err
		}
		return cloneProfiles(items), nil
	})
	if err != nil {
		return nil, err
	}

	return cloneProfiles(items), nil
}

// Invalidate drops the cached roster so the next read goes to storage.
func (r *RosterRepository) Invalidate(ctx context.Context) {
	r.cache.Delete(ctx, rosterProfilesKey)
}

func cloneProfiles(in []roster.Profile) []roster.Profile {
	out := make([]roster.Profile, len(in))
	for i, p := range in {
		p.Position = append([]string(nil), p.Position...)
		out[i] = p
	}
	return out
}
