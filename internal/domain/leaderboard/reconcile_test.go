package leaderboard

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/footy-tracker/internal/domain/match"
	"github.com/riskibarqy/footy-tracker/internal/domain/playerstats"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
)

func scenarioAggregate() playerstats.Aggregate {
	return playerstats.Accumulate([]match.Match{{
		ID:          "01-03-2025",
		Day:         "Weekend",
		MatchPlayed: true,
		Attendance: match.NewAttendance(map[string][]match.Appearance{
			"RED":  {{Name: "Ana", Goals: 3}},
			"BLUE": {{Name: "Ben", Goals: 1, CleanSheet: true}},
		}),
		Winners: []string{"Ana"},
		Losers:  []string{"Ben"},
	}})
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{part: 0, whole: 0, want: 0},
		{part: 3, whole: 0, want: 0},
		{part: 1, whole: 8, want: 13},
		{part: 1, whole: 3, want: 33},
		{part: 2, whole: 3, want: 67},
		{part: 5, whole: 5, want: 100},
	}
	for _, tc := range tests {
		if got := Percentage(tc.part, tc.whole); got != tc.want {
			t.Fatalf("Percentage(%d,%d)=%d want %d", tc.part, tc.whole, got, tc.want)
		}
	}
}

func TestReconcilePerformance_EmptyBoardAssignsSequentialIDs(t *testing.T) {
	got := ReconcilePerformance(nil, scenarioAggregate(), roster.Directory{})

	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].ID != 1 || got[0].Name != "Ana" || got[1].ID != 2 || got[1].Name != "Ben" {
		t.Fatalf("unexpected ids: %+v", got)
	}
	for _, entry := range got {
		if !reflect.DeepEqual(entry.Position, []string{"MID"}) {
			t.Fatalf("expected default position for %s, got %v", entry.Name, entry.Position)
		}
	}
	if got[0].Goals != 3 || got[0].HatTricks != 1 || got[0].WeekendStats.Wins != 1 {
		t.Fatalf("unexpected Ana stats: %+v", got[0])
	}
}

func TestReconcilePerformance_KeepsIdentityAndUntouchedEntries(t *testing.T) {
	existing := []PerformanceEntry{
		{ID: 7, Name: "Ben", Position: []string{"GK"}, StatBlock: playerstats.StatBlock{Matches: 9}},
		{ID: 3, Name: "Old Timer", Position: []string{"DEF"}, StatBlock: playerstats.StatBlock{Matches: 20, Goals: 4}},
	}
	lookup := roster.NewDirectory([]roster.Profile{{Name: "Ana", Position: []string{"FWD"}}})

	first := ReconcilePerformance(existing, scenarioAggregate(), lookup)
	if len(first) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(first))
	}
	if first[0].ID != 7 || !reflect.DeepEqual(first[0].Position, []string{"GK"}) || first[0].Matches != 1 {
		t.Fatalf("unexpected updated Ben: %+v", first[0])
	}
	if !reflect.DeepEqual(first[1], existing[1]) {
		t.Fatalf("entry missing from aggregate must be untouched: %+v", first[1])
	}
	if first[2].Name != "Ana" || first[2].ID != 8 || !reflect.DeepEqual(first[2].Position, []string{"FWD"}) {
		t.Fatalf("unexpected new Ana: %+v", first[2])
	}
	if existing[0].Matches != 9 {
		t.Fatalf("input entries must not be mutated")
	}

	second := ReconcilePerformance(first, scenarioAggregate(), roster.Directory{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second reconcile changed the board:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestReconcileAttendance_AssignsCategoryAndSNo(t *testing.T) {
	notes := "captain"
	prior := 30
	board := AttendanceBoard{
		Summary: playerstats.AttendanceTally{TotalGames: 40},
		Players: []AttendanceEntry{
			{Category: CategoryWeekend, SNo: 4, Name: "Ben", TotalGames: 12, PriorGames: map[int]*int{2024: &prior}, Notes: &notes},
			{Category: CategoryWeekend, SNo: 2, Name: "Cy", TotalGames: 5},
			{Category: CategoryOthers, SNo: 1, Name: "Guest"},
		},
	}
	lookup := roster.NewDirectory([]roster.Profile{
		{Name: "Ana", Availability: "WEEKEND"},
		{Name: "Dee", Availability: "sometimes"},
	})

	agg := scenarioAggregate()
	agg.Attendance["Dee"] = playerstats.AttendanceTally{MidweekGames: 1, TotalGames: 1}
	agg.Summary = playerstats.AttendanceTally{MidweekGames: 2, WeekendGames: 1, TotalGames: 3}

	got := ReconcileAttendance(board, agg, lookup, 2025)

	if got.Summary != agg.Summary {
		t.Fatalf("expected summary replaced, got %+v", got.Summary)
	}
	if len(got.Players) != 5 {
		t.Fatalf("expected 5 players, got %d", len(got.Players))
	}

	ben := got.Players[0]
	if ben.SNo != 4 || ben.Category != CategoryWeekend || ben.TotalGames != 1 || ben.TotalPercentage != 33 || ben.WeekendPercentage != 100 {
		t.Fatalf("unexpected Ben: %+v", ben)
	}
	if ben.Notes == nil || *ben.Notes != "captain" || *ben.PriorGames[2024] != 30 {
		t.Fatalf("manual fields lost on Ben: %+v", ben)
	}
	if got.Players[1].TotalGames != 5 {
		t.Fatalf("Cy must stay untouched, got %+v", got.Players[1])
	}

	ana := got.Players[3]
	if ana.Name != "Ana" || ana.Category != CategoryWeekend || ana.SNo != 5 {
		t.Fatalf("unexpected Ana: %+v", ana)
	}
	if v, ok := ana.PriorGames[2024]; !ok || v != nil || ana.Difference != nil || ana.Notes != nil {
		t.Fatalf("expected null historical fields on new entry, got %+v", ana)
	}

	dee := got.Players[4]
	if dee.Name != "Dee" || dee.Category != CategoryOthers || dee.SNo != 2 || dee.MidweekPercentage != 50 {
		t.Fatalf("unexpected Dee: %+v", dee)
	}

	again := ReconcileAttendance(got, agg, lookup, 2025)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("reconcile is not stable on replay")
	}
}
