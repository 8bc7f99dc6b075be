// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks (server drain,
// database ping, background worker stop).
const DefaultTimeout = 10 * time.Second
