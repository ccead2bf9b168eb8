package core

import "os"

// Profile selects how much of the Deno namespace is assembled onto
// globalThis.
type Profile string

const (
	// ProfileFull exposes the whole namespace: filesystem and process
	// operations, the error taxonomy, permissions and the test hook.
	ProfileFull Profile = "full"

	// ProfileMinimal exposes only the filesystem and process primitives,
	// without permissions or the error taxonomy.
	ProfileMinimal Profile = "minimal"
)

// RuntimeConfig configures a Runtime. The zero value is usable: full
// profile, no args, in-memory storage, default timeout.
type RuntimeConfig struct {
	// Profile selects the global surface assembly. Empty means ProfileFull.
	Profile Profile

	// Args become the frozen script arguments array, captured once at
	// construction.
	Args []string

	// StoragePath is the SQLite file backing localStorage. Empty means an
	// in-memory database that lives as long as the Runtime.
	StoragePath string

	// ExecutionTimeoutMS bounds promise awaiting (Eval on a promise value,
	// async test bodies). Zero means 30000.
	ExecutionTimeoutMS int

	// MaxLogEntries caps the per-run console capture buffer. Zero means 1000.
	MaxLogEntries int

	// Exit is called by the script-facing exit operation. Nil means os.Exit.
	Exit func(code int)
}

const (
	defaultTimeoutMS  = 30000
	defaultMaxEntries = 1000
)

// Normalize fills in defaults so backends and registrars never re-check.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	if c.Profile == "" {
		c.Profile = ProfileFull
	}
	if c.ExecutionTimeoutMS <= 0 {
		c.ExecutionTimeoutMS = defaultTimeoutMS
	}
	if c.MaxLogEntries <= 0 {
		c.MaxLogEntries = defaultMaxEntries
	}
	if c.Exit == nil {
		c.Exit = os.Exit
	}
	return c
}
