package match

import (
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestDecode_PositionedAttendance(t *testing.T) {
	raw := []byte(`{
		"id": "01-03-2025",
		"date": "01/03/2025",
		"day": "Weekend",
		"matchPlayed": true,
		"matchCancelled": false,
		"attendance": {
			"RED": [{"name": "Ana", "position": "FWD", "goals": 3, "groupStatus": "REGULAR"}],
			"BLUE": [{"name": "Ben", "position": "GK", "cleanSheet": true, "groupStatus": "ONLOAN"}]
		},
		"scoreline": {"RED": 3, "BLUE": 0},
		"winners": ["Ana"],
		"losers": ["Ben"],
		"cleanSheets": [{"name": "Ben"}, "Ana"]
	}`)

	m, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Attendance.Legacy {
		t.Fatalf("expected positioned attendance")
	}
	if got := m.Attendance.Teams["RED"][0]; got.Name != "Ana" || got.Goals != 3 || got.OwnGoals != 0 {
		t.Fatalf("unexpected RED appearance: %+v", got)
	}
	if !m.Attendance.Teams["BLUE"][0].CleanSheet || m.Attendance.Teams["BLUE"][0].GroupStatus != GroupOnLoan {
		t.Fatalf("unexpected BLUE appearance: %+v", m.Attendance.Teams["BLUE"][0])
	}
	if len(m.CleanSheets) != 2 || m.CleanSheets[0].Name != "Ben" || m.CleanSheets[1].Name != "Ana" {
		t.Fatalf("expected both clean sheet shapes to decode, got %+v", m.CleanSheets)
	}
	if m.TotalGoals != nil {
		t.Fatalf("expected absent totalGoals to stay nil")
	}
}

func TestDecode_LegacyAttendanceUsesTopLevelArrays(t *testing.T) {
	raw := []byte(`{
		"id": "04-03-2025",
		"day": "Tuesday",
		"matchPlayed": true,
		"attendance": ["Ana", "Ben", "Cy"],
		"scorers": [{"name": "Ana", "goals": 2}, {"name": "Dee", "goals": 1}],
		"ownGoals": [{"name": "Ben"}],
		"cleanSheets": ["Cy"]
	}`)

	m, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !m.Attendance.Legacy {
		t.Fatalf("expected legacy attendance")
	}

	byName := make(map[string]Appearance)
	for _, app := range Normalize(m) {
		byName[app.Name] = app
	}
	if byName["Ana"].Goals != 2 {
		t.Fatalf("expected Ana goals=2, got %+v", byName["Ana"])
	}
	if byName["Ben"].OwnGoals != 1 {
		t.Fatalf("expected own goal default of 1, got %+v", byName["Ben"])
	}
	if !byName["Cy"].CleanSheet {
		t.Fatalf("expected Cy clean sheet")
	}
	if _, ok := byName["Dee"]; ok {
		t.Fatalf("expected scorer missing from name list to be left out, got %+v", byName["Dee"])
	}
	if got := Unlisted(m); len(got) != 1 || got[0] != "Dee" {
		t.Fatalf("expected Dee reported as unlisted, got %v", got)
	}

	encoded, err := sonic.Marshal(m.Attendance)
	if err != nil {
		t.Fatalf("encode attendance: %v", err)
	}
	if string(encoded) != `["Ana","Ben","Cy"]` {
		t.Fatalf("expected legacy shape on encode, got %s", encoded)
	}
}

func TestNameRef_EncodesInShapeRead(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare string", in: `["Ana"]`, want: `["Ana"]`},
		{name: "object", in: `[{"name":"Ana"}]`, want: `[{"name":"Ana"}]`},
		{name: "mixed", in: `["Ana",{"name":"Ben"}]`, want: `["Ana",{"name":"Ben"}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var refs []NameRef
			if err := sonic.Unmarshal([]byte(tc.in), &refs); err != nil {
				t.Fatalf("decode: %v", err)
			}
			encoded, err := sonic.Marshal(refs)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if string(encoded) != tc.want {
				t.Fatalf("unexpected encoding: got=%s want=%s", encoded, tc.want)
			}
		})
	}

	built, err := sonic.Marshal([]NameRef{{Name: "Cy"}, BareNameRef("Dee")})
	if err != nil {
		t.Fatalf("encode built refs: %v", err)
	}
	if string(built) != `[{"name":"Cy"},"Dee"]` {
		t.Fatalf("unexpected encoding for built refs: %s", built)
	}
}

func TestAttendance_EscapesNamesTheSameInBothShapes(t *testing.T) {
	name := "Ana <&> Ben"

	legacy, err := Attendance{Legacy: true, Teams: map[string][]Appearance{
		LegacyTeam: {{Name: name}},
	}}.MarshalJSON()
	if err != nil {
		t.Fatalf("encode legacy: %v", err)
	}
	positioned, err := NewAttendance(map[string][]Appearance{
		"RED": {{Name: name}},
	}).MarshalJSON()
	if err != nil {
		t.Fatalf("encode positioned: %v", err)
	}

	const escaped = `"Ana \u003c\u0026\u003e Ben"`
	if !strings.Contains(string(legacy), escaped) {
		t.Fatalf("legacy encoding not escaped: %s", legacy)
	}
	if !strings.Contains(string(positioned), escaped) {
		t.Fatalf("positioned encoding not escaped: %s", positioned)
	}
}
