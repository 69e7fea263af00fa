package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tracker/internal/domain/roster"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

const listRosterProfilesQuery = `
	SELECT name, availability, position, updated_at
	FROM roster_profiles
	WHERE deleted_at IS NULL
	ORDER BY name`

type RosterRepository struct {
	db      *sqlx.DB
	breaker *resilience.Breaker
}

func NewRosterRepository(db *sqlx.DB, breaker *resilience.Breaker) *RosterRepository {
	return &RosterRepository{db: db, breaker: breaker}
}

func (r *RosterRepository) ListProfiles(ctx context.Context) ([]roster.Profile, error) {
	var rows []rosterProfileTableModel
	err := withStatementRetry(ctx, r.breaker, "list roster profiles", func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, listRosterProfilesQuery)
	})
	if err != nil {
		return nil, err
	}

	out := make([]roster.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterProfileFromRow(row))
	}
	return out, nil
}

func rosterProfileFromRow(row rosterProfileTableModel) roster.Profile {
	return roster.Profile{
		Name:         row.Name,
		Availability: strings.TrimSpace(row.Availability.String),
		Position:     roster.ParsePosition(row.Position),
	}
}
