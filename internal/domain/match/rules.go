package match

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingID    = errors.New("match id is required")
	ErrMalformedID  = errors.New("malformed match id")
	ErrInvalidMatch = errors.New("invalid match")
)

// IDLayout is the canonical match id format (DD-MM-YYYY).
const IDLayout = "02-01-2006"

// Period is the weekend/midweek split used by period statistics.
type Period string

const (
	PeriodWeekend Period = "Weekend"
	PeriodMidweek Period = "Midweek"
)

// ParseID turns a DD-MM-YYYY match id into a calendar date.
func ParseID(id string) (time.Time, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return time.Time{}, ErrMissingID
	}

	parts := strings.Split(id, "-")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("%w: %q expected DD-MM-YYYY", ErrMalformedID, id)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return time.Time{}, fmt.Errorf("%w: %q has non-numeric component %q", ErrMalformedID, id, part)
		}
	}

	date, err := time.Parse(IDLayout, id)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedID, id, err)
	}
	return date, nil
}

// PeriodOf classifies a match day label. Older records carry a weekday name
// instead of Weekend/Midweek. Every label that is not a weekend label falls
// into the midweek split so the two splits always add up to the season.
func PeriodOf(day string) Period {
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "weekend", "saturday", "sunday":
		return PeriodWeekend
	default:
		return PeriodMidweek
	}
}

// Warning is a non-fatal consistency finding on a match.
type Warning struct {
	MatchID string `json:"matchId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	WarnScorelineMismatch  = "scoreline_mismatch"
	WarnTotalGoalsMismatch = "total_goals_mismatch"
	WarnOverwritePlayed    = "overwrite_played"
	WarnUnlistedPlayer     = "unlisted_player"
)

// Validate checks a match before it enters a tracker. Structural problems are
// returned as an error; consistency problems are returned as warnings.
func Validate(m Match) ([]Warning, error) {
	if _, err := ParseID(m.ID); err != nil {
		return nil, err
	}

	for color, sheet := range m.Attendance.Teams {
		for i, app := range sheet {
			if strings.TrimSpace(app.Name) == "" {
				return nil, fmt.Errorf("%w: match=%s team=%s appearance %d has no name", ErrInvalidMatch, m.ID, color, i)
			}
			if app.Goals < 0 || app.OwnGoals < 0 {
				return nil, fmt.Errorf("%w: match=%s player=%s has negative goal count", ErrInvalidMatch, m.ID, app.Name)
			}
		}
	}
	for color, goals := range m.Scoreline {
		if goals < 0 {
			return nil, fmt.Errorf("%w: match=%s team=%s has negative score", ErrInvalidMatch, m.ID, color)
		}
	}
	if m.Counts() && !m.Attendance.Legacy && len(m.Attendance.Teams) > 2 {
		return nil, fmt.Errorf("%w: match=%s has %d teams, expected 2", ErrInvalidMatch, m.ID, len(m.Attendance.Teams))
	}

	if !m.Counts() {
		return nil, nil
	}

	var warnings []Warning
	for _, name := range Unlisted(m) {
		warnings = append(warnings, Warning{
			MatchID: m.ID,
			Code:    WarnUnlistedPlayer,
			Message: fmt.Sprintf("player %s is credited but missing from the attendance list; contribution ignored", name),
		})
	}

	scoreline := m.ScorelineTotal()
	if len(m.Scoreline) > 0 {
		recorded := 0
		for _, app := range Normalize(m) {
			recorded += app.Goals + app.OwnGoals
		}
		if recorded != scoreline {
			warnings = append(warnings, Warning{
				MatchID: m.ID,
				Code:    WarnScorelineMismatch,
				Message: fmt.Sprintf("scoreline total %d differs from recorded player goals %d", scoreline, recorded),
			})
		}
		if m.TotalGoals != nil && *m.TotalGoals != scoreline {
			warnings = append(warnings, Warning{
				MatchID: m.ID,
				Code:    WarnTotalGoalsMismatch,
				Message: fmt.Sprintf("totalGoals %d differs from scoreline total %d", *m.TotalGoals, scoreline),
			})
		}
	}

	return warnings, nil
}
