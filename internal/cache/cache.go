// Package cache stores computed trust results keyed by donor.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/dshills/qfscore/internal/trust"
)

// ResultCache is the key-value store the service keeps donor scores in.
// A miss is reported as ok == false with a nil error.
type ResultCache interface {
	Get(ctx context.Context, key string) (trust.Result, bool, error)
	Set(ctx context.Context, key string, r trust.Result, ttl time.Duration) error
}

// DonorKey builds the cache key for a donor under a scoring profile, so a
// profile change never serves stale scores.
func DonorKey(profile, donorID string) string {
	return "trust:" + strings.ToLower(strings.TrimSpace(profile)) + ":" + strings.TrimSpace(donorID)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (trust.Result, bool, error) {
	return trust.Result{}, false, nil
}

func (Nop) Set(context.Context, string, trust.Result, time.Duration) error { return nil }
