// Package lifecycle holds shared constants for process start/stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds startup checks and graceful shutdown steps.
const DefaultTimeout = 10 * time.Second
