package postgres

import (
	"context"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/footy-tracker/internal/platform/resilience"
)

const (
	selectSeasonDocumentQuery = `
		SELECT season, kind, payload, updated_at
		FROM season_documents
		WHERE season = $1 AND kind = $2`

	upsertSeasonDocumentQuery = `
		INSERT INTO season_documents (season, kind, payload, updated_at)
		VALUES ($1, $2, $3::jsonb, NOW())
		ON CONFLICT (season, kind) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()`

	listSeasonsQuery = `
		SELECT season
		FROM season_documents
		WHERE kind = $1
		ORDER BY season`
)

// documentStore keeps each season document as one JSONB row, so the stored
// shape is exactly the JSON document the file driver writes.
type documentStore struct {
	db      *sqlx.DB
	breaker *resilience.Breaker
}

func (s documentStore) get(ctx context.Context, season int, kind string, dst any) (bool, error) {
	var row seasonDocumentTableModel
	err := withStatementRetry(ctx, s.breaker, "get "+kind+" document", func(ctx context.Context) error {
		return s.db.GetContext(ctx, &row, selectSeasonDocumentQuery, season, kind)
	})
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := sonic.Unmarshal(row.Payload, dst); err != nil {
		return false, crerr.Wrapf(err, "decode %s document season=%d", kind, season)
	}
	return true, nil
}

// seasonDocument is one encoded row for putAll.
type seasonDocument struct {
	kind    string
	payload []byte
}

// putAll upserts every document of a season in one transaction.
func (s documentStore) putAll(ctx context.Context, season int, docs []seasonDocument) error {
	return withStatementRetry(ctx, s.breaker, "save season documents", func(ctx context.Context) error {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return crerr.Wrapf(err, "begin tx save season=%d", season)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		for _, doc := range docs {
			if _, err := tx.ExecContext(ctx, upsertSeasonDocumentQuery, season, doc.kind, string(doc.payload)); err != nil {
				return crerr.Wrapf(err, "upsert %s document season=%d", doc.kind, season)
			}
		}

		if err := tx.Commit(); err != nil {
			return crerr.Wrapf(err, "commit save season=%d", season)
		}
		return nil
	})
}

func (s documentStore) seasons(ctx context.Context, kind string) ([]int, error) {
	var out []int
	err := withStatementRetry(ctx, s.breaker, "list seasons", func(ctx context.Context) error {
		out = out[:0]
		return s.db.SelectContext(ctx, &out, listSeasonsQuery, kind)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
