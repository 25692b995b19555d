// Package lifecycle holds shared constants for service startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup checks and shutdown of long-lived
// resources (HTTP server, database pool).
const DefaultTimeout = 10 * time.Second
