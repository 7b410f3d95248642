// Package common provides shared utilities for Stockscout
package common

import "time"

// Freshness TTLs for cached market data components
const (
	FreshnessQuote        = 15 * time.Minute
	FreshnessHistory      = 1 * time.Hour
	FreshnessFundamentals = 7 * 24 * time.Hour // fundamentals move slowly
	FreshnessNews         = 6 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
