package graphite

import "time"

// Config configures the Graphite reporter collaborator, mirroring the
// teacher's own graphite.Config shape (URI/Prefix/Interval) plus the
// Enabled toggle its Init function checks.
type Config struct {
	Enabled  bool
	URI      string
	Prefix   string
	Interval time.Duration
}
