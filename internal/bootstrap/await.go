package bootstrap

import (
	"fmt"
	"time"

	"github.com/minideno/minideno/internal/core"
)

// AwaitJSON evaluates an expression and returns its settled value as JSON.
// Promise results are awaited by pumping the microtask queue until the
// promise settles or the deadline passes. There is no event loop here: a
// promise that waits on anything other than microtasks never settles and
// times out.
func AwaitJSON(rt core.JSRuntime, expr string, timeout time.Duration) (string, error) {
	setup := fmt.Sprintf(`globalThis.__md_await = { state: 0, value: '', error: '' };
Promise.resolve((function() { return (%s); })()).then(function(v) {
	var s = JSON.stringify(v === undefined ? null : v);
	globalThis.__md_await.value = s === undefined ? 'null' : s;
	globalThis.__md_await.state = 1;
}, function(e) {
	globalThis.__md_await.error = (e instanceof Error) ? (e.name + ': ' + e.message) : String(e);
	globalThis.__md_await.state = 2;
});`, expr)

	if err := rt.Eval(setup); err != nil {
		return "", err
	}
	defer func() { _ = rt.Eval("delete globalThis.__md_await;") }()

	deadline := time.Now().Add(timeout)
	for {
		rt.RunMicrotasks()
		state, err := rt.EvalInt("globalThis.__md_await.state")
		if err != nil {
			return "", fmt.Errorf("polling evaluation state: %w", err)
		}
		switch state {
		case 1:
			return rt.EvalString("globalThis.__md_await.value")
		case 2:
			msg, err := rt.EvalString("globalThis.__md_await.error")
			if err != nil {
				return "", fmt.Errorf("reading evaluation error: %w", err)
			}
			return "", fmt.Errorf("%s", msg)
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("evaluation timed out after %s", timeout)
		}
		time.Sleep(time.Millisecond)
	}
}
