package core

// EngineBackend is the engine-specific half of a Runtime. Exactly one
// implementation is compiled in, selected by build tags at the facade.
type EngineBackend interface {
	// Execute runs a script to completion, drains the microtask queue and
	// returns the captured logs and error state.
	Execute(source string) *Result

	// Eval evaluates an expression and returns its value JSON-encoded.
	// Promise results are awaited by pumping microtasks against the
	// configured deadline.
	Eval(expr string) (string, error)

	// RunTests drives the registered tests and reports the summary.
	RunTests() *Result

	// Close releases the engine context and any native resources owned by
	// the registrars.
	Close()
}
