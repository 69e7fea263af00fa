package memory

import (
	"context"

	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
)

// RosterRepository serves a fixed roster handed over at construction.
type RosterRepository struct {
	profiles []roster.Profile
}

func NewRosterRepository(profiles []roster.Profile) *RosterRepository {
	return &RosterRepository{profiles: cloneProfiles(profiles)}
}

func (r *RosterRepository) ListProfiles(_ context.Context) ([]roster.Profile, error) {
	return cloneProfiles(r.profiles), nil
}

func cloneProfiles(in []roster.Profile) []roster.Profile {
	out := make([]roster.Profile, len(in))
	for i, p := range in {
		p.Position = append([]string(nil), p.Position...)
		out[i] = p
	}
	return out
}
