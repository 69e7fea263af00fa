package roster

import (
	"bytes"
	"encoding/json"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Availability values as written in the roster file.
const (
	AvailabilityAllGames = "ALLGAMES"
	AvailabilityWeekend  = "WEEKEND"
	AvailabilityMidweek  = "MIDWEEK"
)

// Profile is a player's entry in the league roster.
type Profile struct {
	Name         string   `json:"name"`
	Availability string   `json:"availability"`
	Position     []string `json:"position"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string          `json:"name"`
		Availability string          `json:"availability"`
		Position     json.RawMessage `json:"position"`
	}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Name = raw.Name
	p.Availability = strings.TrimSpace(raw.Availability)
	p.Position = ParsePosition(raw.Position)
	return nil
}

// ParsePosition decodes a stored position value. Only a list of codes is
// accepted; anything else means the position is unknown.
func ParsePosition(raw []byte) []string {
	pos := bytes.TrimSpace(raw)
	if len(pos) == 0 || pos[0] != '[' {
		return nil
	}
	var codes []string
	if err := sonic.Unmarshal(pos, &codes); err != nil {
		return nil
	}
	return codes
}

// Lookup resolves a player name to a roster profile.
type Lookup interface {
	Lookup(name string) (Profile, bool)
}

// Directory is an in-memory Lookup keyed by player name.
type Directory map[string]Profile

// NewDirectory indexes profiles by name; later duplicates win.
func NewDirectory(profiles []Profile) Directory {
	out := make(Directory, len(profiles))
	for _, p := range profiles {
		if p.Name == "" {
			continue
		}
		out[p.Name] = p
	}
	return out
}

func (d Directory) Lookup(name string) (Profile, bool) {
	p, ok := d[name]
	return p, ok
}
