package playerstats

import "sort"

// HatTrickGoals is the single-match goal count that earns a hat-trick.
const HatTrickGoals = 3

// StatBlock is a player's record over a set of matches.
type StatBlock struct {
	Matches     int `json:"matches"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Draws       int `json:"draws"`
	CleanSheets int `json:"cleanSheets"`
	Goals       int `json:"goals"`
	HatTricks   int `json:"hatTricks"`
	OwnGoals    int `json:"ownGoals"`
}

func (b *StatBlock) add(o StatBlock) {
	b.Matches += o.Matches
	b.Wins += o.Wins
	b.Losses += o.Losses
	b.Draws += o.Draws
	b.CleanSheets += o.CleanSheets
	b.Goals += o.Goals
	b.HatTricks += o.HatTricks
	b.OwnGoals += o.OwnGoals
}

// AttendanceTally counts the matches a player turned up for.
type AttendanceTally struct {
	MidweekGames int `json:"midweekGames"`
	WeekendGames int `json:"weekendGames"`
	TotalGames   int `json:"totalGames"`
}

// Performance is a player's cumulative block plus its weekend/weekday split.
type Performance struct {
	Overall StatBlock `json:"overall"`
	Weekend StatBlock `json:"weekendStats"`
	Weekday StatBlock `json:"weekdayStats"`
}

// Aggregate is the per-player output of Accumulate.
type Aggregate struct {
	Summary     AttendanceTally
	Attendance  map[string]AttendanceTally
	Performance map[string]Performance
}

// AttendanceNames returns attendance keys in sorted order.
func (a Aggregate) AttendanceNames() []string {
	return sortedKeys(a.Attendance)
}

// PerformanceNames returns performance keys in sorted order.
func (a Aggregate) PerformanceNames() []string {
	return sortedKeys(a.Performance)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
