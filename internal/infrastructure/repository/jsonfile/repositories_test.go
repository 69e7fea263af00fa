package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/footy-tracker/internal/domain/leaderboard"
	"github.com/riskibarqy/footy-tracker/internal/domain/season"
)

func TestSeasonRepository_ReadsStoredDocumentAndSavesAtomically(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2025", trackerFile), `{
		"season": 2025, "totalGoals": 0, "weekendGoals": 0, "weekdayGoals": 0,
		"matches": [{
			"id": "01-03-2025", "date": "01/03/2025", "day": "Saturday",
			"matchPlayed": true, "matchCancelled": false,
			"attendance": ["Ana", "Ben"],
			"scoreline": {"ALL": 2},
			"winners": [], "losers": [],
			"scorers": [{"name": "Ana", "goals": 2}],
			"ownGoals": [], "cleanSheets": ["Ben"]
		}],
		"allPlayers": []
	}`)

	repo := NewSeasonRepository(root)
	ctx := context.Background()

	tracker, found, err := repo.GetTracker(ctx, 2025)
	if err != nil || !found {
		t.Fatalf("get tracker: found=%v err=%v", found, err)
	}
	if len(tracker.Matches) != 1 || !tracker.Matches[0].Attendance.Legacy {
		t.Fatalf("unexpected tracker: %+v", tracker)
	}
	if got := tracker.Matches[0].CleanSheets; len(got) != 1 || got[0].Name != "Ben" {
		t.Fatalf("clean sheet names not decoded: %+v", got)
	}

	next, err := season.Recompute(tracker)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if err := NewPublisher(root).Publish(ctx, season.Snapshot{Tracker: next}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	reloaded, _, err := repo.GetTracker(ctx, 2025)
	if err != nil {
		t.Fatalf("reload tracker: %v", err)
	}
	if reloaded.TotalGoals != 2 || reloaded.WeekendGoals != 2 || len(reloaded.AllPlayers) != 2 {
		t.Fatalf("unexpected reloaded tracker: %+v", reloaded)
	}

	entries, err := os.ReadDir(filepath.Join(root, "2025"))
	if err != nil {
		t.Fatalf("read season dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestSeasonRepository_MissingAndListing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := NewSeasonRepository(root)
	ctx := context.Background()

	if _, found, err := repo.GetTracker(ctx, 2030); err != nil || found {
		t.Fatalf("expected missing tracker, found=%v err=%v", found, err)
	}

	publisher := NewPublisher(root)
	for _, year := range []int{2025, 2023} {
		if err := publisher.Publish(ctx, season.Snapshot{Tracker: season.New(year)}); err != nil {
			t.Fatalf("publish %d: %v", year, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	seasons, err := repo.ListSeasons(ctx)
	if err != nil {
		t.Fatalf("list seasons: %v", err)
	}
	if len(seasons) != 2 || seasons[0] != 2023 || seasons[1] != 2025 {
		t.Fatalf("unexpected seasons: %v", seasons)
	}
}

func TestLeaderboardRepository_KeepsManualFieldsAcrossSave(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2025", attendanceFile), `{
		"summary": {"midweekGames": 1, "weekendGames": 1, "totalGames": 2},
		"players": [{"category": "WEEKEND", "sno": 3, "name": "Ben", "midweekGames": 0, "weekendGames": 1,
			"totalGames": 1, "midweekPercentage": 0, "weekendPercentage": 100, "totalPercentage": 50,
			"games2024": 12, "difference": null, "notes": "captain", "shirt": 7}]
	}`)
	writeFile(t, filepath.Join(root, "2025", performanceFile), `[
		{"id": 2, "name": "Ben", "position": "DEF", "matches": 1, "wins": 1, "losses": 0, "draws": 0,
		 "cleanSheets": 1, "goals": 0, "hatTricks": 0, "ownGoals": 0,
		 "weekendStats": {"matches": 1}, "weekdayStats": {}, "rating": 8.5}
	]`)

	repo := NewLeaderboardRepository(root)
	ctx := context.Background()

	board, found, err := repo.GetAttendance(ctx, 2025)
	if err != nil || !found {
		t.Fatalf("get attendance: found=%v err=%v", found, err)
	}
	board.Players[0].TotalGames = 2

	perf, found, err := repo.GetPerformance(ctx, 2025)
	if err != nil || !found {
		t.Fatalf("get performance: found=%v err=%v", found, err)
	}
	if len(perf[0].Position) != 1 || perf[0].Position[0] != "DEF" {
		t.Fatalf("scalar position not decoded: %+v", perf[0])
	}
	snapshot := season.Snapshot{Tracker: season.New(2025), Attendance: board, Performance: perf}
	if err := NewPublisher(root).Publish(ctx, snapshot); err != nil {
		t.Fatalf("publish: %v", err)
	}

	reloaded, _, err := repo.GetAttendance(ctx, 2025)
	if err != nil {
		t.Fatalf("reload attendance: %v", err)
	}
	ben := reloaded.Players[0]
	if ben.Category != leaderboard.CategoryWeekend || ben.SNo != 3 {
		t.Fatalf("identity fields changed: %+v", ben)
	}
	if ben.TotalGames != 2 || ben.Notes == nil || *ben.Notes != "captain" || string(ben.Extra["shirt"]) != "7" {
		t.Fatalf("manual fields lost: %+v", ben)
	}
	if ben.PriorGames[2024] == nil || *ben.PriorGames[2024] != 12 {
		t.Fatalf("prior games lost: %+v", ben.PriorGames)
	}

	perfAgain, _, err := repo.GetPerformance(ctx, 2025)
	if err != nil {
		t.Fatalf("reload performance: %v", err)
	}
	if string(perfAgain[0].Extra["rating"]) != "8.5" {
		t.Fatalf("extra performance key lost: %+v", perfAgain[0].Extra)
	}

	if _, found, err := repo.GetPerformance(ctx, 1999); err != nil || found {
		t.Fatalf("expected missing board, found=%v err=%v", found, err)
	}
}

func TestPublisher_FailedRenameKeepsPreviousDocuments(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ctx := context.Background()
	publisher := NewPublisher(root)

	previous := season.New(2025)
	previous.TotalGoals = 7
	if err := publisher.Publish(ctx, season.Snapshot{Tracker: previous}); err != nil {
		t.Fatalf("seed publish: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(root, "2025", trackerFile))
	if err != nil {
		t.Fatalf("read tracker: %v", err)
	}

	// A non-empty directory in place of the performance board makes its rename fail.
	perfPath := filepath.Join(root, "2025", performanceFile)
	if err := os.Remove(perfPath); err != nil {
		t.Fatalf("remove performance board: %v", err)
	}
	writeFile(t, filepath.Join(perfPath, "keep"), "x")

	next := season.New(2025)
	next.TotalGoals = 9
	snapshot := season.Snapshot{
		Tracker:    next,
		Attendance: leaderboard.AttendanceBoard{Players: []leaderboard.AttendanceEntry{{Name: "Ana", TotalGames: 1}}},
	}
	if err := publisher.Publish(ctx, snapshot); err == nil {
		t.Fatalf("expected publish to fail")
	}

	after, err := os.ReadFile(filepath.Join(root, "2025", trackerFile))
	if err != nil {
		t.Fatalf("read tracker after failure: %v", err)
	}
	if string(after) != string(before) {
		t.Fatalf("tracker changed by failed publish:\nbefore=%s\nafter=%s", before, after)
	}

	board, found, err := NewLeaderboardRepository(root).GetAttendance(ctx, 2025)
	if err != nil || !found {
		t.Fatalf("get attendance: found=%v err=%v", found, err)
	}
	if len(board.Players) != 0 {
		t.Fatalf("attendance changed by failed publish: %+v", board.Players)
	}

	entries, err := os.ReadDir(filepath.Join(root, "2025"))
	if err != nil {
		t.Fatalf("read season dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			t.Fatalf("scratch file left behind: %s", entry.Name())
		}
	}
}

func TestRosterRepository_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := NewRosterRepository(root)

	profiles, err := repo.ListProfiles(context.Background())
	if err != nil || len(profiles) != 0 {
		t.Fatalf("expected empty roster, got %v err=%v", profiles, err)
	}

	writeFile(t, filepath.Join(root, rosterFile), `[
		{"name": "Ana", "availability": " ALLGAMES ", "position": ["FWD"]},
		{"name": "Cy", "availability": "MIDWEEK", "position": "GK"}
	]`)
	profiles, err = repo.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 2 || profiles[0].Availability != "ALLGAMES" || profiles[1].Position != nil {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
