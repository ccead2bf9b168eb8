package bootstrap

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/minideno/minideno/internal/core"
)

// SetupTesting installs the test registration hook on bridge.testing. The
// namespace assembler exposes it as the test operation; RunTests drives what
// was registered.
func SetupTesting(rt core.JSRuntime) error {
	if err := requireBridge(rt, "testing"); err != nil {
		return err
	}

	js := fmt.Sprintf(`(function() {
	var root = %s;
	root.testing.tests = [];
	root.testing.register = function(nameOrDef, maybeFn) {
		var def;
		if (typeof nameOrDef === 'string') {
			if (typeof maybeFn !== 'function') throw new TypeError('test function required');
			def = { name: nameOrDef, fn: maybeFn, ignore: false };
		} else if (typeof nameOrDef === 'function') {
			def = { name: nameOrDef.name || 'anonymous test', fn: nameOrDef, ignore: false };
		} else if (nameOrDef && typeof nameOrDef === 'object') {
			var fn = typeof nameOrDef.fn === 'function' ? nameOrDef.fn : maybeFn;
			if (typeof fn !== 'function') throw new TypeError('test function required');
			def = {
				name: String(nameOrDef.name || fn.name || 'anonymous test'),
				fn: fn,
				ignore: !!nameOrDef.ignore,
			};
		} else {
			throw new TypeError('test requires a name and function, or a definition object');
		}
		root.testing.tests.push(def);
	};
})();`, bridgeExpr)

	return rt.Eval(js)
}

// RunTests runs every registered test in registration order, awaiting async
// test bodies by pumping microtasks against the deadline. Per-test outcomes
// go to the console log; the summary comes back to Go.
func RunTests(rt core.JSRuntime, timeout time.Duration) (*core.TestSummary, error) {
	driver := fmt.Sprintf(`globalThis.__md_test = { done: false, passed: 0, failed: 0, ignored: 0, failures: [] };
(function() {
	var root = %s;
	var st = globalThis.__md_test;
	var tests = root.testing.tests.slice();
	(async function() {
		for (var i = 0; i < tests.length; i++) {
			var t = tests[i];
			if (t.ignore) {
				st.ignored++;
				console.log('ignored ' + t.name);
				continue;
			}
			try {
				await t.fn();
				st.passed++;
				console.log('ok ' + t.name);
			} catch (e) {
				st.failed++;
				var msg = (e instanceof Error) ? (e.name + ': ' + e.message) : String(e);
				st.failures.push(t.name + ': ' + msg);
				console.error('FAILED ' + t.name + ': ' + msg);
			}
		}
	})().then(function() { st.done = true; }, function() { st.done = true; });
})();`, bridgeExpr)

	if err := rt.Eval(driver); err != nil {
		return nil, err
	}
	defer func() { _ = rt.Eval("delete globalThis.__md_test;") }()

	deadline := time.Now().Add(timeout)
	for {
		rt.RunMicrotasks()
		done, err := rt.EvalBool("globalThis.__md_test.done")
		if err != nil {
			return nil, fmt.Errorf("polling test state: %w", err)
		}
		if done {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("test run timed out after %s", timeout)
		}
		time.Sleep(time.Millisecond)
	}

	raw, err := rt.EvalString("JSON.stringify(globalThis.__md_test)")
	if err != nil {
		return nil, fmt.Errorf("reading test summary: %w", err)
	}
	var summary core.TestSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("decoding test summary: %w", err)
	}
	return &summary, nil
}
