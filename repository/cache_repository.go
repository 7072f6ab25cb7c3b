package repository

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// CacheRepository stores calculation results keyed by a digest of their
// inputs. A miss is reported as ok == false with a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// Key derives a cache key for mode from the canonical input parts.
func Key(mode string, parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write([]byte{0})
	}
	return fmt.Sprintf("calc:%s:%016x", mode, d.Sum64())
}
