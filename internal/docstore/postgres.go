package docstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const documentsDDL = `CREATE TABLE IF NOT EXISTS documents (
	collection text NOT NULL,
	id         text NOT NULL,
	doc        jsonb NOT NULL,
	PRIMARY KEY (collection, id)
)`

// PostgresDB stores every document as a JSONB row. It exposes the same
// find/insert/update contract as FileDB; multi-document transactions are
// deliberately not part of the interface.
type PostgresDB struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresDB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, documentsDDL); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresDB{pool: pool}, nil
}

func (db *PostgresDB) Find(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	query := `SELECT doc FROM documents WHERE collection = $1`
	args := []any{collection}
	if len(q) > 0 {
		filter, err := json.Marshal(q)
		if err != nil {
			return nil, err
		}
		query += ` AND doc @> $2`
		args = append(args, filter)
	}
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (db *PostgresDB) Insert(ctx context.Context, collection string, doc any) error {
	id, err := documentID(doc)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3)`,
		collection, id, raw)
	return err
}

func (db *PostgresDB) Update(ctx context.Context, collection string, q Query, doc any) (int, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	filter, err := json.Marshal(q)
	if err != nil {
		return 0, err
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE documents SET doc = $3 WHERE collection = $1 AND doc @> $2`,
		collection, filter, raw)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (db *PostgresDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.pool.Ping(ctx)
}

func (db *PostgresDB) Close() error {
	db.pool.Close()
	return nil
}
