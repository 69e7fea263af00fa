package playerstats

import (
	"github.com/riskibarqy/footy-tracker/internal/domain/match"
)

// Accumulate folds matches into per-player attendance and performance
// aggregates. Matches that were not played, or were cancelled, are skipped.
// The result only depends on the set of matches, not on their order.
func Accumulate(matches []match.Match) Aggregate {
	agg := Aggregate{
		Attendance:  make(map[string]AttendanceTally),
		Performance: make(map[string]Performance),
	}

	for _, m := range matches {
		if !m.Counts() {
			continue
		}
		weekend := match.PeriodOf(m.Day) == match.PeriodWeekend
		agg.Summary = countGame(agg.Summary, weekend)

		for _, line := range matchLines(m) {
			agg.Attendance[line.name] = countGame(agg.Attendance[line.name], weekend)

			delta := line.block(m)
			perf := agg.Performance[line.name]
			perf.Overall.add(delta)
			if weekend {
				perf.Weekend.add(delta)
			} else {
				perf.Weekday.add(delta)
			}
			agg.Performance[line.name] = perf
		}
	}

	return agg
}

func countGame(t AttendanceTally, weekend bool) AttendanceTally {
	t.TotalGames++
	if weekend {
		t.WeekendGames++
	} else {
		t.MidweekGames++
	}
	return t
}

// matchLine merges every appearance of one player within a single match.
type matchLine struct {
	name       string
	goals      int
	ownGoals   int
	cleanSheet bool
}

func matchLines(m match.Match) []matchLine {
	index := make(map[string]int)
	lines := make([]matchLine, 0)
	for _, app := range match.Normalize(m) {
		if app.Name == "" {
			continue
		}
		i, ok := index[app.Name]
		if !ok {
			lines = append(lines, matchLine{name: app.Name})
			i = len(lines) - 1
			index[app.Name] = i
		}
		lines[i].goals += app.Goals
		lines[i].ownGoals += app.OwnGoals
		lines[i].cleanSheet = lines[i].cleanSheet || app.CleanSheet
	}
	return lines
}

func (l matchLine) block(m match.Match) StatBlock {
	b := StatBlock{
		Matches:  1,
		Goals:    l.goals,
		OwnGoals: l.ownGoals,
	}

	switch {
	case contains(m.Winners, l.name):
		b.Wins = 1
	case contains(m.Losers, l.name):
		b.Losses = 1
	case len(m.Winners) == 0 && len(m.Losers) == 0:
		b.Draws = 1
	}

	if l.goals >= HatTrickGoals {
		b.HatTricks = 1
	}
	if l.cleanSheet {
		b.CleanSheets = 1
	}
	return b
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
