package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileDB keeps each collection as a JSON array in <dir>/<collection>.json,
// fully loaded in memory and rewritten on every mutation. With an empty dir
// it runs memory-only, which is what the tests use.
type FileDB struct {
	dir string

	mu          sync.RWMutex
	collections map[string][]json.RawMessage
}

func OpenFile(dir string) (*FileDB, error) {
	db := &FileDB{dir: dir, collections: map[string][]json.RawMessage{}}
	if dir == "" {
		return db, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		var docs []json.RawMessage
		if len(data) > 0 {
			if err := json.Unmarshal(data, &docs); err != nil {
				return nil, fmt.Errorf("load collection %s: %w", name, err)
			}
		}
		db.collections[strings.TrimSuffix(name, ".json")] = docs
	}
	return db, nil
}

func (db *FileDB) Find(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	var out []json.RawMessage
	for _, doc := range db.collections[collection] {
		if matches(doc, q) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (db *FileDB) Insert(ctx context.Context, collection string, doc any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.collections[collection] = append(db.collections[collection], raw)
	return db.flushLocked(collection)
}

func (db *FileDB) Update(ctx context.Context, collection string, q Query, doc any) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	updated := 0
	docs := db.collections[collection]
	for i, existing := range docs {
		if matches(existing, q) {
			docs[i] = raw
			updated++
		}
	}
	if updated == 0 {
		return 0, nil
	}
	return updated, db.flushLocked(collection)
}

func (db *FileDB) Ping(ctx context.Context) error { return ctx.Err() }

func (db *FileDB) Close() error { return nil }

// flushLocked rewrites one collection file atomically via temp file + rename.
func (db *FileDB) flushLocked(collection string) error {
	if db.dir == "" {
		return nil
	}
	data, err := json.MarshalIndent(db.collections[collection], "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(db.dir, collection+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
