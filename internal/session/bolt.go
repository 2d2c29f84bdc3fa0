//go:build !js

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const sessionBucket = "session"

// Bolt is a KV persisted in a BoltDB file.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if needed) the session database at path.
func OpenBolt(path string) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("session path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		if raw := bucket.Get([]byte(key)); raw != nil {
			value, ok = string(raw), true
		}
		return nil
	})
	return value, ok, err
}

func (b *Bolt) Set(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Remove(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Delete([]byte(key))
	})
}
