package core

import "time"

// TimeProvider abstracts time operations so use cases stay deterministic in tests
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
