package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxDB is satisfied by *pgxpool.Pool and pgxmock pools.
type pgxDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresBackend stores ledgers in the lead_ledgers table. The body column
// is JSON (not JSONB) so documents come back byte for byte.
type PostgresBackend struct {
	db pgxDB
}

func NewPostgresBackend(db pgxDB) *PostgresBackend {
	if db == nil {
		panic("ledger: pgx pool required")
	}
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Name() string { return "postgres" }

func (b *PostgresBackend) Location(key string) string {
	return "postgres://lead_ledgers/" + key
}

func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var body string
	err := b.db.QueryRow(ctx, `SELECT body FROM lead_ledgers WHERE key = $1`, key).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (b *PostgresBackend) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO lead_ledgers (key, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
	`
	_, err := b.db.Exec(ctx, query, key, string(data))
	return err
}
