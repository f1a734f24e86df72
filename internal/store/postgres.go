package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/errors"
)

const uniqueViolation = "23505"

// Postgres stores records as JSON payloads keyed by (kind, record_id).
// Schema:
//
//	CREATE TABLE records (
//	    kind       TEXT NOT NULL,
//	    record_id  TEXT NOT NULL,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (kind, record_id)
//	);
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Save(ctx context.Context, r domain.Record) (_ string, err error) {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generate record ID: %w", err)
		}
		r.ID = id.String()
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = stderrors.Join(err, tx.Rollback(ctx))
		}
	}()

	const insRecordStmt = `INSERT INTO records (kind, record_id, payload) VALUES ($1, $2, $3);`

	_, err = tx.Exec(ctx, insRecordStmt, string(r.Kind), r.ID, payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", errors.New(errors.CodeAlreadyExists,
				errors.WithMessagef("record already exists: kind=%s id=%s", r.Kind, r.ID),
				errors.WithCause(err),
			)
		}
		return "", fmt.Errorf("insert record: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	return r.ID, nil
}

func (p *Postgres) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	const selStmt = `SELECT payload FROM records WHERE kind = $1 ORDER BY created_at;`

	rows, err := p.db.Query(ctx, selStmt, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}

		var r domain.Record
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		r.Kind = kind
		out = append(out, r)
	}

	if rows.Err() != nil && !stderrors.Is(rows.Err(), pgx.ErrNoRows) {
		return nil, fmt.Errorf("iterate records: %w", rows.Err())
	}

	return out, nil
}
