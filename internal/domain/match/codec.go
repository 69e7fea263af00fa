package match

import (
	"bytes"
	"fmt"
	"sort"

	sonic "github.com/bytedance/sonic"
)

// Attendance holds the team sheets of a match keyed by team color.
//
// Older records list attendees as a flat array of names. Those decode into a
// single LegacyTeam sheet with Legacy set, and encode back to the flat shape.
type Attendance struct {
	Teams  map[string][]Appearance
	Legacy bool
}

// NewAttendance builds a positioned attendance from team sheets.
func NewAttendance(teams map[string][]Appearance) Attendance {
	return Attendance{Teams: teams}
}

// Colors returns the team colors in stable order.
func (a Attendance) Colors() []string {
	out := make([]string, 0, len(a.Teams))
	for color := range a.Teams {
		out = append(out, color)
	}
	sort.Strings(out)
	return out
}

func (a Attendance) clone() Attendance {
	out := Attendance{Legacy: a.Legacy}
	if a.Teams == nil {
		return out
	}
	out.Teams = make(map[string][]Appearance, len(a.Teams))
	for color, sheet := range a.Teams {
		out.Teams[color] = append([]Appearance(nil), sheet...)
	}
	return out
}

func (a Attendance) MarshalJSON() ([]byte, error) {
	if a.Legacy {
		names := make([]string, 0)
		for _, color := range a.Colors() {
			for _, app := range a.Teams[color] {
				names = append(names, app.Name)
			}
		}
		return sonic.ConfigStd.Marshal(names)
	}
	if a.Teams == nil {
		return []byte("{}"), nil
	}
	return sonic.ConfigStd.Marshal(a.Teams)
}

func (a *Attendance) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = Attendance{}
		return nil
	}

	if trimmed[0] == '[' {
		var names []string
		if err := sonic.Unmarshal(trimmed, &names); err != nil {
			return fmt.Errorf("decode legacy attendance: %w", err)
		}
		sheet := make([]Appearance, 0, len(names))
		for _, name := range names {
			sheet = append(sheet, Appearance{Name: name, GroupStatus: GroupRegular})
		}
		*a = Attendance{Teams: map[string][]Appearance{LegacyTeam: sheet}, Legacy: true}
		return nil
	}

	var teams map[string][]Appearance
	if err := sonic.Unmarshal(trimmed, &teams); err != nil {
		return fmt.Errorf("decode attendance: %w", err)
	}
	*a = Attendance{Teams: teams}
	return nil
}

func (n *NameRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := sonic.Unmarshal(trimmed, &name); err != nil {
			return fmt.Errorf("decode name ref: %w", err)
		}
		*n = NameRef{Name: name, bare: true}
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := sonic.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("decode name ref: %w", err)
	}
	*n = NameRef{Name: obj.Name}
	return nil
}

func (n NameRef) MarshalJSON() ([]byte, error) {
	if n.bare {
		return sonic.ConfigStd.Marshal(n.Name)
	}
	return sonic.ConfigStd.Marshal(struct {
		Name string `json:"name"`
	}{Name: n.Name})
}

// Decode parses one match document.
func Decode(data []byte) (Match, error) {
	var m Match
	if err := sonic.Unmarshal(data, &m); err != nil {
		return Match{}, fmt.Errorf("%w: %v", ErrInvalidMatch, err)
	}
	return m, nil
}
