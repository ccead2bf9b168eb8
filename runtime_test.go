package minideno

import (
	"strings"
	"testing"
)

func TestExecuteCapturesLogs(t *testing.T) {
	rt := newTestRuntime(t)
	res := rt.Execute(`
		console.log('hello', 42);
		console.warn('careful');
		console.error({a: 1});
	`)
	if res.Error != "" {
		t.Fatalf("Execute error: %s", res.Error)
	}
	if len(res.Logs) != 3 {
		t.Fatalf("got %d log entries, want 3: %+v", len(res.Logs), res.Logs)
	}
	if res.Logs[0].Level != "log" || res.Logs[0].Message != "hello 42" {
		t.Errorf("log[0] = %+v", res.Logs[0])
	}
	if res.Logs[1].Level != "warn" || res.Logs[1].Message != "careful" {
		t.Errorf("log[1] = %+v", res.Logs[1])
	}
	if res.Logs[2].Level != "error" || res.Logs[2].Message != `{"a":1}` {
		t.Errorf("log[2] = %+v", res.Logs[2])
	}
}

func TestExecuteReportsScriptErrors(t *testing.T) {
	rt := newTestRuntime(t)
	res := rt.Execute(`throw new Error('boom');`)
	if res.Error == "" {
		t.Fatal("expected a script error")
	}
	if !strings.Contains(res.Error, "boom") {
		t.Errorf("error %q should mention the thrown message", res.Error)
	}
}

func TestEvalReturnsJSON(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, "1 + 2", "3")
	expectJSON(t, rt, "'a' + 'b'", `"ab"`)
	expectJSON(t, rt, "[1, 2, 3].map(function(x) { return x * 2; })", "[2,4,6]")
}

func TestEvalAwaitsPromises(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, "Promise.resolve(7)", "7")
	expectJSON(t, rt, "Promise.resolve('x').then(function(v) { return v + 'y'; })", `"xy"`)
}

func TestEvalSurfacesRejections(t *testing.T) {
	rt := newTestRuntime(t)
	_, err := rt.Eval("Promise.reject(new TypeError('nope'))")
	if err == nil {
		t.Fatal("expected an error from a rejected promise")
	}
	if !strings.Contains(err.Error(), "TypeError") || !strings.Contains(err.Error(), "nope") {
		t.Errorf("rejection error = %v", err)
	}
}

func TestRuntimesAreIsolated(t *testing.T) {
	a := newTestRuntime(t)
	b := newTestRuntime(t)

	if res := a.Execute("globalThis.shared = 'from a';"); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	expectJSON(t, a, "globalThis.shared", `"from a"`)
	expectJSON(t, b, "typeof globalThis.shared", `"undefined"`)
}

func TestStatePersistsAcrossExecutes(t *testing.T) {
	rt := newTestRuntime(t)
	if res := rt.Execute("globalThis.counter = 1;"); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	if res := rt.Execute("globalThis.counter++;"); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	expectJSON(t, rt, "globalThis.counter", "2")
}

func TestProtoAccessorRemoved(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `Object.prototype.hasOwnProperty.call(Object.prototype, '__proto__')`, "false")
}
