package postgres

import (
	"database/sql"
	"time"
)

type seasonDocumentTableModel struct {
	Season    int       `db:"season"`
	Kind      string    `db:"kind"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rosterProfileTableModel struct {
	Name         string         `db:"name"`
	Availability sql.NullString `db:"availability"`
	Position     []byte         `db:"position"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
