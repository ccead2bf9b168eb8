package core

// JSRuntime abstracts a JavaScript engine so the bootstrap registrars can be
// written once and run on any backend.
type JSRuntime interface {
	// Eval evaluates JavaScript and discards the result.
	Eval(js string) error

	// EvalString evaluates JavaScript and returns the result as a Go string.
	EvalString(js string) (string, error)

	// EvalBool evaluates JavaScript and returns the result as a Go bool.
	EvalBool(js string) (bool, error)

	// EvalInt evaluates JavaScript and returns the result as a Go int.
	EvalInt(js string) (int, error)

	// RegisterFunc registers a Go function as a global JavaScript function.
	// Supported signatures take string/int/float64/bool arguments and return
	// zero or one value, optionally with a trailing error that surfaces as a
	// thrown TypeError.
	RegisterFunc(name string, fn any) error

	// SetGlobal sets a global variable on the JS context.
	SetGlobal(name string, value any) error

	// RunMicrotasks pumps the engine's microtask queue until it is empty.
	// V8: PerformMicrotaskCheckpoint, QuickJS: ExecutePendingJob loop.
	RunMicrotasks()
}
