package bootstrap

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/minideno/minideno/internal/core"
)

// buildInfo describes the compilation target in the shape scripts expect:
// a Rust-style target triple derived from GOOS/GOARCH.
type buildInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Target     string `json:"target"`
	Vendor     string `json:"vendor"`
	Standalone bool   `json:"standalone"`
}

func currentBuildInfo() buildInfo {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}
	info := buildInfo{OS: runtime.GOOS, Arch: arch}
	switch runtime.GOOS {
	case "darwin":
		info.Vendor = "apple"
		info.Target = arch + "-apple-darwin"
	case "windows":
		info.Vendor = "pc"
		info.Target = arch + "-pc-windows-msvc"
	default:
		info.Vendor = "unknown"
		info.Target = arch + "-unknown-" + runtime.GOOS + "-gnu"
	}
	return info
}

// SetupOS installs the process operations on bridge.os: args, exit, env
// access, the build descriptor and the permission stubs.
//
// args are captured once from the config; noColor is resolved once here.
// env access is never cached, every call hits the live environment.
func SetupOS(rt core.JSRuntime, cfg core.RuntimeConfig) error {
	if err := requireBridge(rt, "os"); err != nil {
		return err
	}

	exit := cfg.Exit
	if err := rt.RegisterFunc("__md_exit", func(code int) int {
		exit(code)
		return 0
	}); err != nil {
		return err
	}

	if err := rt.RegisterFunc("__md_env", envDispatch); err != nil {
		return err
	}

	args := cfg.Args
	if args == nil {
		args = []string{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding args: %w", err)
	}
	buildJSON, err := json.Marshal(currentBuildInfo())
	if err != nil {
		return fmt.Errorf("encoding build info: %w", err)
	}
	_, noColor := os.LookupEnv("NO_COLOR")

	js := fmt.Sprintf(`(function() {
	var root = %s;
	var os = root.os;
	os.args = %s;
	os.buildJSON = %q;
	os.noColor = %t;
	os.exit = function(code) {
		__md_exit(code === undefined || code === null ? 0 : code | 0);
	};
	os.env = {
		get: function(key) {
			var v = root.unwrap(__md_env('get', String(key), ''));
			return v === null ? undefined : v;
		},
		set: function(key, value) {
			root.unwrap(__md_env('set', String(key), String(value)));
		},
		delete: function(key) {
			root.unwrap(__md_env('delete', String(key), ''));
		},
		has: function(key) {
			return root.unwrap(__md_env('has', String(key), ''));
		},
		toObject: function() {
			return root.unwrap(__md_env('toObject', '', ''));
		},
	};
	class PermissionStatus {
		constructor() {}
		get state() { return 'granted'; }
		get partial() { return false; }
		get onchange() { return null; }
		set onchange(v) {}
	}
	os.PermissionStatus = PermissionStatus;
	os.permissions = {
		querySync: function() { return new PermissionStatus(); },
		query: function() { return Promise.resolve(new PermissionStatus()); },
		requestSync: function() { return new PermissionStatus(); },
		request: function() { return Promise.resolve(new PermissionStatus()); },
		revokeSync: function() { return new PermissionStatus(); },
		revoke: function() { return Promise.resolve(new PermissionStatus()); },
	};
})();`, bridgeExpr, argsJSON, string(buildJSON), noColor)

	return rt.Eval(js)
}

func envDispatch(op, key, value string) string {
	switch op {
	case "get":
		if v, ok := os.LookupEnv(key); ok {
			return okJSON(v)
		}
		return okJSON(nil)
	case "set":
		if err := os.Setenv(key, value); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)
	case "delete":
		if err := os.Unsetenv(key); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)
	case "has":
		_, ok := os.LookupEnv(key)
		return okJSON(ok)
	case "toObject":
		env := map[string]string{}
		for _, kv := range os.Environ() {
			if i := strings.IndexByte(kv, '='); i > 0 {
				env[kv[:i]] = kv[i+1:]
			}
		}
		return okJSON(env)
	}
	return errJSON(core.KindNotSupported, "unknown env operation "+op)
}
