// Package bootstrap installs the script-facing runtime surface: the internal
// bridge channel, the capability registrars and the assembled global
// namespace. Each registrar pairs Go-registered functions with a JS source
// string, in dependency order, against any core.JSRuntime backend.
package bootstrap

import (
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// bridgeExpr locates the bridge root. The key is a registered symbol, so the
// channel never shows up in Object.keys, getOwnPropertyNames or for..in.
const bridgeExpr = `globalThis[Symbol.for("minideno.internal")]`

const bridgeJS = `
delete Object.prototype.__proto__;
(function() {
	var sym = Symbol.for("minideno.internal");
	var root = globalThis[sym];
	if (!root) {
		root = {};
		globalThis[sym] = root;
	}
	var trees = ['fs', 'os', 'encoding', 'errors', 'web', 'storage', 'testing'];
	for (var i = 0; i < trees.length; i++) {
		if (!root[trees[i]]) root[trees[i]] = {};
	}
})();
`

// SetupBridge creates the bridge root and its capability sub-trees, and
// removes the __proto__ accessor before any script code can reach it.
func SetupBridge(rt core.JSRuntime) error {
	return rt.Eval(bridgeJS)
}

// requireBridge verifies the bridge root and a sub-tree exist. Registrars
// call it first so a broken install order fails loudly at startup instead of
// leaving a half-wired surface behind.
func requireBridge(rt core.JSRuntime, tree string) error {
	js := fmt.Sprintf(`(function() {
		var root = %s;
		return !!(root && root[%q]);
	})()`, bridgeExpr, tree)
	ok, err := rt.EvalBool(js)
	if err != nil {
		return fmt.Errorf("checking bridge tree %q: %w", tree, err)
	}
	if !ok {
		return fmt.Errorf("bridge tree %q missing: bridge must be installed first", tree)
	}
	return nil
}
