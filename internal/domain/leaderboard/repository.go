package leaderboard

import "context"

// Repository reads the boards of a season. Boards are written together with
// their tracker through season.Publisher.
type Repository interface {
	GetAttendance(ctx context.Context, season int) (AttendanceBoard, bool, error)
	GetPerformance(ctx context.Context, season int) ([]PerformanceEntry, bool, error)
}
