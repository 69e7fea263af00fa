package season

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/footy-tracker/internal/domain/match"
)

// Recompute rebuilds every derived field of a tracker from its match list.
//
// Goal totals only count played, non-cancelled matches. A counted match with
// no totalGoals gets one derived from its scorers (or appearances when no
// scorer list exists). Matches are ordered by the calendar date encoded in
// their id; AllPlayers covers every match, played or not.
func Recompute(t Tracker) (Tracker, error) {
	out := t.Clone()

	dates := make(map[string]time.Time, len(out.Matches))
	for _, m := range out.Matches {
		date, err := match.ParseID(m.ID)
		if err != nil {
			return Tracker{}, fmt.Errorf("season %d: %w", t.Season, err)
		}
		dates[m.ID] = date
	}

	out.TotalGoals = 0
	out.WeekendGoals = 0
	out.WeekdayGoals = 0
	for i := range out.Matches {
		m := &out.Matches[i]
		if !m.Counts() {
			continue
		}
		if m.TotalGoals == nil {
			derived := deriveTotalGoals(*m)
			m.TotalGoals = &derived
		}

		goals := *m.TotalGoals
		out.TotalGoals += goals
		if match.PeriodOf(m.Day) == match.PeriodWeekend {
			out.WeekendGoals += goals
		} else {
			out.WeekdayGoals += goals
		}
	}

	sort.SliceStable(out.Matches, func(i, j int) bool {
		return dates[out.Matches[i].ID].Before(dates[out.Matches[j].ID])
	})

	out.AllPlayers = roster(out.Matches)
	return out, nil
}

func deriveTotalGoals(m match.Match) int {
	if len(m.Scorers) > 0 {
		total := 0
		for _, ref := range m.Scorers {
			total += ref.GoalCount(0)
		}
		return total
	}

	total := 0
	for _, app := range match.Normalize(m) {
		total += app.Goals + app.OwnGoals
	}
	return total
}

func roster(matches []match.Match) []string {
	seen := make(map[string]struct{})
	for _, m := range matches {
		for _, name := range m.Names() {
			seen[name] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
