// Package store persists chat state in a local key-value store.
package store

import (
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// Open opens (creating if needed) the badger database at path.
func Open(path string) (*badger.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
}
