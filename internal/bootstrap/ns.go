package bootstrap

import (
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// SetupNamespace assembles the frozen Deno global from the bridge sub-trees.
// It runs after every registrar: assembly copies operations by reference, so
// no registrar logic is duplicated here.
//
// The full profile exposes everything. The minimal profile exposes only the
// filesystem and process primitives, without permissions, the error taxonomy
// or the test hook.
func SetupNamespace(rt core.JSRuntime, profile core.Profile) error {
	if err := requireBridge(rt, "fs"); err != nil {
		return err
	}

	js := fmt.Sprintf(`(function() {
	var root = %s;
	var full = %t;
	var fs = root.fs;
	var os = root.os;
	var deno = {};

	var fsOps = ['cwd', 'readFileSync', 'readTextFileSync', 'writeFileSync',
		'writeTextFileSync', 'statSync', 'lstatSync', 'mkdirSync', 'removeSync',
		'copyFileSync', 'readDirSync', 'renameSync', 'realPathSync',
		'truncateSync', 'makeTempDirSync', 'makeTempFileSync'];
	for (var i = 0; i < fsOps.length; i++) {
		deno[fsOps[i]] = fs[fsOps[i]];
	}

	deno.args = Object.freeze(os.args.slice());
	deno.exit = os.exit;
	deno.env = Object.freeze({
		get: os.env.get,
		set: os.env.set,
		delete: os.env.delete,
		has: os.env.has,
		toObject: os.env.toObject,
	});

	var cachedBuild = null;
	Object.defineProperty(deno, 'build', {
		get: function() {
			if (!cachedBuild) cachedBuild = Object.freeze(JSON.parse(os.buildJSON));
			return cachedBuild;
		},
		enumerable: true,
	});
	Object.defineProperty(deno, 'noColor', {
		get: function() { return os.noColor; },
		enumerable: true,
	});

	if (full) {
		var errs = {};
		var names = Object.keys(root.errors);
		for (var i = 0; i < names.length; i++) {
			Object.freeze(root.errors[names[i]].prototype);
			Object.freeze(root.errors[names[i]]);
			errs[names[i]] = root.errors[names[i]];
		}
		deno.errors = Object.freeze(errs);
		deno.permissions = Object.freeze(os.permissions);
		deno.test = root.testing.register;
	}

	Object.freeze(deno);
	Object.defineProperty(globalThis, 'Deno', {
		value: deno,
		writable: false,
		configurable: false,
		enumerable: false,
	});
})();`, bridgeExpr, profile != core.ProfileMinimal)

	return rt.Eval(js)
}
