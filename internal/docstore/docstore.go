package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrMissingID = errors.New("document has no id field")

// Query matches documents whose top-level fields equal every entry. Values
// are compared after a JSON round-trip, so string keys (ids, names, roles)
// are the intended match targets.
type Query map[string]any

// DB is the storage contract the ledger is built on: per-collection
// Find/Insert/Update with single-document atomicity and no multi-document
// transactions. Anything stronger is layered above it by the caller.
type DB interface {
	Find(ctx context.Context, collection string, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, doc any) error
	Update(ctx context.Context, collection string, q Query, doc any) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

func matches(doc json.RawMessage, q Query) bool {
	if len(q) == 0 {
		return true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	for key, want := range q {
		got, ok := fields[key]
		if !ok {
			return false
		}
		wantJSON, err := json.Marshal(want)
		if err != nil {
			return false
		}
		if string(wantJSON) != string(got) {
			return false
		}
	}
	return true
}

func documentID(doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	var fields struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", err
	}
	if fields.ID == "" {
		return "", ErrMissingID
	}
	return fields.ID, nil
}
