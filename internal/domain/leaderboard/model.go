package leaderboard

import (
	"encoding/json"
	"strings"

	"github.com/riskibarqy/footy-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
)

// Category groups attendance entries by a player's declared availability.
type Category string

const (
	CategoryAllGames Category = "ALLGAMES"
	CategoryWeekend  Category = "WEEKEND"
	CategoryMidweek  Category = "MIDWEEK"
	CategoryOthers   Category = "Others"
)

// DefaultPosition is assigned to new performance entries without a roster position.
var DefaultPosition = []string{"MID"}

// CategoryOf maps a roster availability onto an attendance category.
func CategoryOf(availability string) Category {
	switch strings.ToUpper(strings.TrimSpace(availability)) {
	case roster.AvailabilityAllGames:
		return CategoryAllGames
	case roster.AvailabilityWeekend:
		return CategoryWeekend
	case roster.AvailabilityMidweek:
		return CategoryMidweek
	default:
		return CategoryOthers
	}
}

// AttendanceBoard is the persisted attendance leaderboard of a season.
type AttendanceBoard struct {
	Summary playerstats.AttendanceTally `json:"summary"`
	Players []AttendanceEntry           `json:"players"`
}

// AttendanceEntry is one player's attendance row.
//
// Category, SNo and Name are fixed when the row is created. PriorGames,
// Difference and Notes are maintained by hand and never recomputed; Extra
// keeps any other key found in the stored document.
type AttendanceEntry struct {
	Category          Category
	SNo               int
	Name              string
	MidweekGames      int
	WeekendGames      int
	TotalGames        int
	MidweekPercentage int
	WeekendPercentage int
	TotalPercentage   int
	PriorGames        map[int]*int
	Difference        *int
	Notes             *string
	Extra             map[string]json.RawMessage
}

// PerformanceEntry is one player's performance row.
type PerformanceEntry struct {
	ID       int
	Name     string
	Position []string
	playerstats.StatBlock
	WeekendStats playerstats.StatBlock
	WeekdayStats playerstats.StatBlock
	Extra        map[string]json.RawMessage
}

// Clone copies the player list. Entries are values; their maps are never
// mutated by this package.
func (b AttendanceBoard) Clone() AttendanceBoard {
	return AttendanceBoard{
		Summary: b.Summary,
		Players: append([]AttendanceEntry(nil), b.Players...),
	}
}

func ClonePerformance(entries []PerformanceEntry) []PerformanceEntry {
	if entries == nil {
		return nil
	}
	out := make([]PerformanceEntry, len(entries))
	for i, entry := range entries {
		entry.Position = append([]string(nil), entry.Position...)
		out[i] = entry
	}
	return out
}
