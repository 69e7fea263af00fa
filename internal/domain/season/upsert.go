package season

import (
	"fmt"

	"github.com/riskibarqy/footy-tracker/internal/domain/match"
)

// UpsertResult describes what Upsert did to the match list.
type UpsertResult struct {
	MatchID         string
	Replaced        bool
	OverwrotePlayed bool
	Warnings        []match.Warning
}

// Upsert inserts a match, or replaces the match with the same id as a whole,
// and recomputes the tracker. Replacing a match that was already played is
// reported as a warning, not an error.
func Upsert(t Tracker, m match.Match) (Tracker, UpsertResult, error) {
	warnings, err := match.Validate(m)
	if err != nil {
		return Tracker{}, UpsertResult{}, err
	}

	result := UpsertResult{MatchID: m.ID, Warnings: warnings}
	next := t.Clone()
	if idx := next.FindMatch(m.ID); idx >= 0 {
		result.Replaced = true
		if next.Matches[idx].MatchPlayed {
			result.OverwrotePlayed = true
			result.Warnings = append(result.Warnings, match.Warning{
				MatchID: m.ID,
				Code:    match.WarnOverwritePlayed,
				Message: fmt.Sprintf("match %s was already recorded as played and has been overwritten", m.ID),
			})
		}
		next.Matches[idx] = m.Clone()
	} else {
		next.Matches = append(next.Matches, m.Clone())
	}

	out, err := Recompute(next)
	if err != nil {
		return Tracker{}, UpsertResult{}, err
	}
	return out, result, nil
}
