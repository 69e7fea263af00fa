package match

import (
	"sort"
)

// GroupStatus marks whether a player belongs to the group or is borrowed for the day.
type GroupStatus string

const (
	GroupRegular GroupStatus = "REGULAR"
	GroupOnLoan  GroupStatus = "ONLOAN"
)

// LegacyTeam is the attendance key used for records that only list player names.
const LegacyTeam = "ALL"

// Appearance is one player's line in a team sheet.
type Appearance struct {
	Name        string      `json:"name"`
	Position    string      `json:"position,omitempty"`
	Goals       int         `json:"goals"`
	OwnGoals    int         `json:"ownGoals"`
	CleanSheet  bool        `json:"cleanSheet"`
	GroupStatus GroupStatus `json:"groupStatus,omitempty"`
}

// ScorerRef is an entry of the top-level scorers or ownGoals arrays.
type ScorerRef struct {
	Name  string `json:"name"`
	Goals *int   `json:"goals,omitempty"`
}

// GoalCount returns the explicit count, or fallback when the entry has none.
func (s ScorerRef) GoalCount(fallback int) int {
	if s.Goals == nil {
		return fallback
	}
	return *s.Goals
}

// NameRef references a player by name. It decodes from either "Ana" or
// {"name":"Ana"} and encodes back in the shape it was read in. Values built
// in code encode as the object form.
type NameRef struct {
	Name string `json:"name"`

	bare bool
}

// BareNameRef returns a reference that encodes as a plain string.
func BareNameRef(name string) NameRef {
	return NameRef{Name: name, bare: true}
}

// Match is one scheduled or played fixture.
type Match struct {
	ID             string         `json:"id"`
	Date           string         `json:"date"`
	Day            string         `json:"day"`
	MatchPlayed    bool           `json:"matchPlayed"`
	MatchCancelled bool           `json:"matchCancelled"`
	Attendance     Attendance     `json:"attendance"`
	Scoreline      map[string]int `json:"scoreline"`
	TotalGoals     *int           `json:"totalGoals,omitempty"`
	Winners        []string       `json:"winners"`
	Losers         []string       `json:"losers"`
	Scorers        []ScorerRef    `json:"scorers"`
	OwnGoals       []ScorerRef    `json:"ownGoals"`
	CleanSheets    []NameRef      `json:"cleanSheets"`
}

// Counts reports whether the match contributes to season statistics.
func (m Match) Counts() bool {
	return m.MatchPlayed && !m.MatchCancelled
}

// ScorelineTotal sums the goals of every team in the scoreline.
func (m Match) ScorelineTotal() int {
	total := 0
	for _, goals := range m.Scoreline {
		total += goals
	}
	return total
}

// Names returns the sorted unique names appearing in the match attendance.
func (m Match) Names() []string {
	seen := make(map[string]struct{})
	for _, app := range Normalize(m) {
		if app.Name == "" {
			continue
		}
		seen[app.Name] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy so callers can mutate without aliasing stored records.
func (m Match) Clone() Match {
	out := m
	out.Attendance = m.Attendance.clone()
	if m.Scoreline != nil {
		out.Scoreline = make(map[string]int, len(m.Scoreline))
		for k, v := range m.Scoreline {
			out.Scoreline[k] = v
		}
	}
	if m.TotalGoals != nil {
		total := *m.TotalGoals
		out.TotalGoals = &total
	}
	out.Winners = append([]string(nil), m.Winners...)
	out.Losers = append([]string(nil), m.Losers...)
	out.Scorers = cloneScorers(m.Scorers)
	out.OwnGoals = cloneScorers(m.OwnGoals)
	out.CleanSheets = append([]NameRef(nil), m.CleanSheets...)
	return out
}

func cloneScorers(in []ScorerRef) []ScorerRef {
	if in == nil {
		return nil
	}
	out := make([]ScorerRef, len(in))
	for i, ref := range in {
		out[i] = ScorerRef{Name: ref.Name}
		if ref.Goals != nil {
			goals := *ref.Goals
			out[i].Goals = &goals
		}
	}
	return out
}
