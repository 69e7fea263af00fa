package season

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/footy-tracker/internal/domain/match"
)

var ErrInvalidSeason = errors.New("invalid season")

// Tracker is one season's match log plus cached totals. TotalGoals,
// WeekendGoals, WeekdayGoals and AllPlayers are derived by Recompute.
type Tracker struct {
	Season       int           `json:"season"`
	TotalGoals   int           `json:"totalGoals"`
	WeekendGoals int           `json:"weekendGoals"`
	WeekdayGoals int           `json:"weekdayGoals"`
	Matches      []match.Match `json:"matches"`
	AllPlayers   []string      `json:"allPlayers"`
}

// New returns an empty tracker for the given season.
func New(year int) Tracker {
	return Tracker{
		Season:     year,
		Matches:    []match.Match{},
		AllPlayers: []string{},
	}
}

// PlayedMatches returns the matches that contribute to statistics, in tracker order.
func (t Tracker) PlayedMatches() []match.Match {
	out := make([]match.Match, 0, len(t.Matches))
	for _, m := range t.Matches {
		if m.Counts() {
			out = append(out, m)
		}
	}
	return out
}

// FindMatch returns the index of the match with the given id, or -1.
func (t Tracker) FindMatch(id string) int {
	for i, m := range t.Matches {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no slices with t.
func (t Tracker) Clone() Tracker {
	out := t
	out.Matches = make([]match.Match, len(t.Matches))
	for i, m := range t.Matches {
		out.Matches[i] = m.Clone()
	}
	out.AllPlayers = append([]string(nil), t.AllPlayers...)
	return out
}

// ValidateYear rejects season identifiers outside a plausible range.
func ValidateYear(year int) error {
	if year < 1900 || year > 9999 {
		return fmt.Errorf("%w: season must be a four digit year, got %d", ErrInvalidSeason, year)
	}
	return nil
}
