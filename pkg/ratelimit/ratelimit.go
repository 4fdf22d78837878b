// Package ratelimit provides a fixed-window request limiter backed by redis,
// used to throttle authentication attempts.
package ratelimit

import "time"

// Rate defines how many requests are allowed per window.
type Rate struct {
	Requests int
	Window   time.Duration
}

// Info describes the current state of a limited key.
type Info struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// Limiter decides whether a keyed request may proceed.
type Limiter interface {
	Allow(key string, limit Rate) (bool, Info)
}

var (
	// PublicLimit applies to anonymous traffic (catalog browsing).
	PublicLimit = Rate{Requests: 60, Window: time.Minute}

	// AuthLimit applies to login/register attempts.
	AuthLimit = Rate{Requests: 10, Window: time.Minute}
)
