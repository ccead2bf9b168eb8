package minideno

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

func TestEnvAccessIsLive(t *testing.T) {
	t.Setenv("MD_TEST_LIVE", "first")
	rt := newTestRuntime(t)

	expectJSON(t, rt, `Deno.env.get('MD_TEST_LIVE')`, `"first"`)
	expectJSON(t, rt, `Deno.env.has('MD_TEST_LIVE')`, "true")

	// No caching: a change after construction is visible immediately.
	t.Setenv("MD_TEST_LIVE", "second")
	expectJSON(t, rt, `Deno.env.get('MD_TEST_LIVE')`, `"second"`)
}

func TestEnvMissingIsUndefined(t *testing.T) {
	rt := newTestRuntime(t)
	os.Unsetenv("MD_TEST_ABSENT")
	expectJSON(t, rt, `typeof Deno.env.get('MD_TEST_ABSENT')`, `"undefined"`)
	expectJSON(t, rt, `Deno.env.has('MD_TEST_ABSENT')`, "false")
}

func TestEnvSetAndDelete(t *testing.T) {
	t.Setenv("MD_TEST_RW", "seed")
	rt := newTestRuntime(t)

	if res := rt.Execute(`Deno.env.set('MD_TEST_RW', 'from script');`); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	if got := os.Getenv("MD_TEST_RW"); got != "from script" {
		t.Errorf("env after script set = %q", got)
	}

	if res := rt.Execute(`Deno.env.delete('MD_TEST_RW');`); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	if _, ok := os.LookupEnv("MD_TEST_RW"); ok {
		t.Error("env var should be gone after script delete")
	}
}

func TestEnvToObject(t *testing.T) {
	t.Setenv("MD_TEST_OBJ", "snapshot")
	rt := newTestRuntime(t)
	expectJSON(t, rt, `Deno.env.toObject()['MD_TEST_OBJ']`, `"snapshot"`)
}

func TestExitRoutesThroughConfiguredFunc(t *testing.T) {
	exitCode := -1
	rt := newTestRuntimeWith(t, Config{Exit: func(code int) { exitCode = code }})

	if res := rt.Execute(`Deno.exit(3);`); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	if exitCode != 3 {
		t.Errorf("exit code = %d, want 3", exitCode)
	}

	if res := rt.Execute(`Deno.exit();`); res.Error != "" {
		t.Fatalf("Execute: %s", res.Error)
	}
	if exitCode != 0 {
		t.Errorf("exit code with no argument = %d, want 0", exitCode)
	}
}

func TestPermissionsAlwaysGranted(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		var s = Deno.permissions.querySync({ name: 'read' });
		return [s.state, s.partial, s.onchange];
	})()`, `["granted",false,null]`)

	expectJSON(t, rt, `(function() {
		var s = Deno.permissions.querySync({ name: 'net' });
		s.onchange = function() {};
		return s.onchange;
	})()`, "null")

	expectJSON(t, rt, `Deno.permissions.query({ name: 'write' }).then(function(s) { return s.state; })`,
		`"granted"`)
	expectJSON(t, rt, `Deno.permissions.requestSync({ name: 'env' }).state`, `"granted"`)
}

func TestNoColorReflectsEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	rt := newTestRuntime(t)
	expectJSON(t, rt, "Deno.noColor", "true")
}

func TestNoColorResolvedOnce(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	rt := newTestRuntime(t)
	expectJSON(t, rt, "Deno.noColor", "false")

	// Cached at construction: a later env change does not move it.
	t.Setenv("NO_COLOR", "1")
	expectJSON(t, rt, "Deno.noColor", "false")
}

func TestArgsMatchConfig(t *testing.T) {
	rt := newTestRuntimeWith(t, Config{Args: []string{"--flag", "input.txt"}})
	expectJSON(t, rt, "Deno.args", `["--flag","input.txt"]`)

	empty := newTestRuntime(t)
	expectJSON(t, empty, "Deno.args", "[]")
}

func TestBuildTargetTriple(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, fmt.Sprintf("Deno.build.os === %s", jsStr(runtime.GOOS)), "true")
	expectJSON(t, rt, `(function() {
		var b = Deno.build;
		return [typeof b.arch, typeof b.target, b.target.indexOf(b.arch) === 0];
	})()`, `["string","string",true]`)
}
