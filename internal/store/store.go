package store

import (
	"context"
	"encoding/json"

	"bingo-hall/internal/docstore"
)

const (
	collAccounts       = "accounts"
	collHouses         = "houses"
	collRecharges      = "recharges"
	collAgentRecharges = "agent_recharges"
)

// Store is the typed data-access layer over the document store. It provides
// single-document operations only; multi-account atomicity is the ledger's
// responsibility.
type Store struct {
	db docstore.DB
}

func New(db docstore.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func findOne[T any](ctx context.Context, db docstore.DB, collection string, q docstore.Query) (*T, error) {
	docs, err := db.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var out T
	if err := json.Unmarshal(docs[0], &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, db docstore.DB, collection string, q docstore.Query) ([]T, error) {
	docs, err := db.Find(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
