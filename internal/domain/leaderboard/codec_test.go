package leaderboard

import (
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestAttendanceBoard_PreservesManualFields(t *testing.T) {
	raw := []byte(`{
		"summary": {"midweekGames": 2, "weekendGames": 3, "totalGames": 5},
		"players": [{
			"category": "ALLGAMES", "sno": 1, "name": "Ana",
			"midweekGames": 2, "weekendGames": 3, "totalGames": 5,
			"midweekPercentage": 100, "weekendPercentage": 100, "totalPercentage": 100,
			"games2024": 41, "difference": -36, "notes": "joined late",
			"nickname": "A"
		}]
	}`)

	var board AttendanceBoard
	if err := sonic.Unmarshal(raw, &board); err != nil {
		t.Fatalf("decode board: %v", err)
	}
	ana := board.Players[0]
	if ana.Category != CategoryAllGames || ana.SNo != 1 || ana.TotalGames != 5 {
		t.Fatalf("unexpected entry: %+v", ana)
	}
	if ana.PriorGames[2024] == nil || *ana.PriorGames[2024] != 41 || *ana.Difference != -36 || *ana.Notes != "joined late" {
		t.Fatalf("historical fields not decoded: %+v", ana)
	}
	if string(ana.Extra["nickname"]) != `"A"` {
		t.Fatalf("unknown key not preserved: %v", ana.Extra)
	}

	encoded, err := sonic.Marshal(ana)
	if err != nil {
		t.Fatalf("encode entry: %v", err)
	}
	want := `{"category":"ALLGAMES","sno":1,"name":"Ana","midweekGames":2,"weekendGames":3,"totalGames":5,` +
		`"midweekPercentage":100,"weekendPercentage":100,"totalPercentage":100,"games2024":41,` +
		`"difference":-36,"notes":"joined late","nickname":"A"}`
	if string(encoded) != want {
		t.Fatalf("unexpected encoding:\n got=%s\nwant=%s", encoded, want)
	}
}

func TestPerformanceEntry_ScalarPositionAndNewEntryNulls(t *testing.T) {
	var entry PerformanceEntry
	if err := sonic.Unmarshal([]byte(`{"id": 4, "name": "Ben", "position": "GK", "goals": 2, "weekendStats": {"goals": 2}}`), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.ID != 4 || len(entry.Position) != 1 || entry.Position[0] != "GK" || entry.WeekendStats.Goals != 2 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	fresh := AttendanceEntry{Category: CategoryOthers, SNo: 1, Name: "Dee", PriorGames: map[int]*int{2024: nil}}
	encoded, err := sonic.Marshal(fresh)
	if err != nil {
		t.Fatalf("encode entry: %v", err)
	}
	if !strings.Contains(string(encoded), `"games2024":null,"difference":null,"notes":null`) {
		t.Fatalf("expected null historical fields, got %s", encoded)
	}
}
