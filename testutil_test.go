package minideno

import (
	"strconv"
	"testing"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := New(Config{})
	if err != nil {
		t.Fatalf("creating runtime: %v", err)
	}
	t.Cleanup(rt.Close)
	return rt
}

func newTestRuntimeWith(t *testing.T, cfg Config) *Runtime {
	t.Helper()
	rt, err := New(cfg)
	if err != nil {
		t.Fatalf("creating runtime: %v", err)
	}
	t.Cleanup(rt.Close)
	return rt
}

// evalJSON evaluates an expression and returns its JSON-encoded value,
// failing the test on a thrown error.
func evalJSON(t *testing.T, rt *Runtime, expr string) string {
	t.Helper()
	v, err := rt.Eval(expr)
	if err != nil {
		t.Fatalf("eval %s: %v", expr, err)
	}
	return v
}

func expectJSON(t *testing.T, rt *Runtime, expr, want string) {
	t.Helper()
	if got := evalJSON(t, rt, expr); got != want {
		t.Errorf("eval %s = %s, want %s", expr, got, want)
	}
}

// jsStr quotes a Go string as a JS string literal.
func jsStr(s string) string {
	return strconv.Quote(s)
}
