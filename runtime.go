// Package minideno embeds a JavaScript engine and exposes a Deno-compatible
// global environment to scripts: the Deno namespace, web-standard URL and
// encoding globals, a structured error taxonomy and synchronous filesystem
// and process operations.
//
// The engine backend is selected at build time: QuickJS by default, V8 with
// -tags v8.
package minideno

import (
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// Re-exported configuration and result types. The internal packages share
// these shapes; the facade is the public spelling.
type (
	Config      = core.RuntimeConfig
	Profile     = core.Profile
	Result      = core.Result
	LogEntry    = core.LogEntry
	TestSummary = core.TestSummary
)

const (
	ProfileFull    = core.ProfileFull
	ProfileMinimal = core.ProfileMinimal
)

// Runtime is one isolated script context. The global surface is installed
// exactly once at construction, before any user script runs; separate
// Runtime values never share state.
//
// A Runtime is not safe for concurrent use. All operations are synchronous.
type Runtime struct {
	backend core.EngineBackend
}

// New creates a Runtime with the full surface installed.
func New(cfg Config) (*Runtime, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating %s backend: %w", backendName, err)
	}
	return &Runtime{backend: backend}, nil
}

// Execute runs a script to completion, then drains the microtask queue.
// Script failures come back in Result.Error, not as a Go error.
func (r *Runtime) Execute(source string) *Result {
	return r.backend.Execute(source)
}

// Eval evaluates an expression and returns its value as JSON. A promise
// result is awaited by pumping microtasks until it settles or the configured
// deadline passes. A thrown error or rejection becomes the returned error.
func (r *Runtime) Eval(expr string) (string, error) {
	return r.backend.Eval(expr)
}

// RunTests runs every test registered by previously executed scripts and
// reports the summary in Result.Tests.
func (r *Runtime) RunTests() *Result {
	return r.backend.RunTests()
}

// Close releases the engine context and the storage database. The Runtime
// must not be used afterwards.
func (r *Runtime) Close() {
	r.backend.Close()
}
