package leaderboard

import (
	"math"

	"github.com/riskibarqy/footy-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
)

// Percentage returns part/whole as a whole percentage, rounding halves away
// from zero. A zero whole yields 0.
func Percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}

// ReconcileAttendance merges fresh attendance tallies into a stored board.
//
// Existing rows only get their counts and percentages overwritten. Players
// seen for the first time are appended in name order with a category from
// the roster and the next sno in that category. Rows for players missing
// from agg are left as they are; nothing is ever removed, so a sno is never
// handed out twice.
func ReconcileAttendance(board AttendanceBoard, agg playerstats.Aggregate, lookup roster.Lookup, season int) AttendanceBoard {
	out := board.Clone()
	out.Summary = agg.Summary

	index := make(map[string]int, len(out.Players))
	nextSNo := make(map[Category]int)
	for i, entry := range out.Players {
		if _, ok := index[entry.Name]; !ok {
			index[entry.Name] = i
		}
		if entry.SNo > nextSNo[entry.Category] {
			nextSNo[entry.Category] = entry.SNo
		}
	}

	for _, name := range agg.AttendanceNames() {
		tally := agg.Attendance[name]
		if i, ok := index[name]; ok {
			applyAttendance(&out.Players[i], tally, out.Summary)
			continue
		}

		category := CategoryOthers
		if profile, ok := lookupProfile(lookup, name); ok {
			category = CategoryOf(profile.Availability)
		}
		nextSNo[category]++

		entry := AttendanceEntry{
			Category:   category,
			SNo:        nextSNo[category],
			Name:       name,
			PriorGames: map[int]*int{season - 1: nil},
		}
		applyAttendance(&entry, tally, out.Summary)
		out.Players = append(out.Players, entry)
		index[name] = len(out.Players) - 1
	}

	return out
}

func applyAttendance(entry *AttendanceEntry, tally, summary playerstats.AttendanceTally) {
	entry.MidweekGames = tally.MidweekGames
	entry.WeekendGames = tally.WeekendGames
	entry.TotalGames = tally.TotalGames
	entry.MidweekPercentage = Percentage(tally.MidweekGames, summary.MidweekGames)
	entry.WeekendPercentage = Percentage(tally.WeekendGames, summary.WeekendGames)
	entry.TotalPercentage = Percentage(tally.TotalGames, summary.TotalGames)
}

// ReconcilePerformance merges fresh performance blocks into stored entries.
//
// New players get id = max(existing id) + 1, + 1 again for each new player
// before them in name order, and a position from the roster (DefaultPosition
// when the roster has none). Existing ids and positions are never changed.
func ReconcilePerformance(entries []PerformanceEntry, agg playerstats.Aggregate, lookup roster.Lookup) []PerformanceEntry {
	out := append([]PerformanceEntry(nil), entries...)

	index := make(map[string]int, len(out))
	maxID := 0
	for i, entry := range out {
		if _, ok := index[entry.Name]; !ok {
			index[entry.Name] = i
		}
		if entry.ID > maxID {
			maxID = entry.ID
		}
	}

	added := 0
	for _, name := range agg.PerformanceNames() {
		perf := agg.Performance[name]
		if i, ok := index[name]; ok {
			applyPerformance(&out[i], perf)
			continue
		}

		position := append([]string(nil), DefaultPosition...)
		if profile, ok := lookupProfile(lookup, name); ok && len(profile.Position) > 0 {
			position = append([]string(nil), profile.Position...)
		}
		added++

		entry := PerformanceEntry{
			ID:       maxID + added,
			Name:     name,
			Position: position,
		}
		applyPerformance(&entry, perf)
		out = append(out, entry)
		index[name] = len(out) - 1
	}

	return out
}

func applyPerformance(entry *PerformanceEntry, perf playerstats.Performance) {
	entry.StatBlock = perf.Overall
	entry.WeekendStats = perf.Weekend
	entry.WeekdayStats = perf.Weekday
}

func lookupProfile(lookup roster.Lookup, name string) (roster.Profile, bool) {
	if lookup == nil {
		return roster.Profile{}, false
	}
	return lookup.Lookup(name)
}
