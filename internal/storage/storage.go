// Package storage persists named values in a key-value backend. Reads never
// fail from the caller's point of view: a missing or unreadable value yields
// the default the caller supplied.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Skotchmaster/shoe_shop/internal/logging"
)

var ErrNotFound = errors.New("key not found")

type Storage interface {
	// Get returns ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces whatever is stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Load decodes the JSON value stored under key, or returns def when the key
// is absent, the backend fails or the value does not decode.
func Load[T any](ctx context.Context, s Storage, key string, def T) T {
	l := logging.FromContext(ctx).With("storage_key", key)

	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.Debug("storage_read_failed", "error", err)
		}
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		l.Debug("storage_decode_failed", "error", err)
		return def
	}
	return v
}

func Save[T any](ctx context.Context, s Storage, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
