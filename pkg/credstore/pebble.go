package credstore

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"modboard/pkg/logger"
)

// credstore is the process-wide persisted key/value store. It holds the
// bearer credential used for protected media fetches plus small pieces of
// operator-set state (analysis fallback defaults). Values live under the
// "cred:" namespace.

var db *pebble.DB

// MediaTokenKey is the well-known key the media bearer credential lives
// under. An absent key is the valid "no credential" state.
const MediaTokenKey = "cred:media_token"

// AnalysisDefaultsKey holds operator-set fallback defaults for annotation
// normalization, as JSON.
const AnalysisDefaultsKey = "cred:analysis_defaults"

// Open opens (or creates) the pebble database at the given path and keeps
// a package-global handle.
func Open(path string) error {
	var err error
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("credstore_open_failed", "path", path, "error", err)
		return err
	}
	logger.Info("credstore_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("credstore_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// Get returns the value stored under key. The second return is false when
// the key is absent; absence is not an error.
func Get(key string) (string, bool, error) {
	if db == nil {
		return "", false, fmt.Errorf("credstore not opened; call credstore.Open first")
	}
	v, closer, err := db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	out := string(v)
	_ = closer.Close()
	return out, true, nil
}

// Set stores value under key with a synced write.
func Set(key, value string) error {
	if db == nil {
		return fmt.Errorf("credstore not opened; call credstore.Open first")
	}
	if err := db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		logger.Error("credstore_set_failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func Delete(key string) error {
	if db == nil {
		return fmt.Errorf("credstore not opened; call credstore.Open first")
	}
	return db.Delete([]byte(key), pebble.Sync)
}
