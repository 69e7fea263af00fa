package memory

import "github.com/riskibarqy/footy-tracker/internal/domain/roster"

// SeedProfiles is the roster used by the in-memory driver in development.
func SeedProfiles() []roster.Profile {
	return []roster.Profile{
		{Name: "Ana", Availability: roster.AvailabilityAllGames, Position: []string{"FWD"}},
		{Name: "Ben", Availability: roster.AvailabilityWeekend, Position: []string{"DEF", "MID"}},
		{Name: "Cy", Availability: roster.AvailabilityMidweek, Position: []string{"GK"}},
		{Name: "Dee", Availability: roster.AvailabilityAllGames, Position: []string{"MID"}},
	}
}
