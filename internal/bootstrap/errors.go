package bootstrap

import (
	"encoding/json"
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// SetupErrors installs one error constructor per taxonomy kind on
// bridge.errors, plus the throw and unwrap helpers every later registrar
// routes failures through. The constructor's name property is the kind
// string, which is the stable tag scripts dispatch on.
func SetupErrors(rt core.JSRuntime) error {
	if err := requireBridge(rt, "errors"); err != nil {
		return err
	}

	names, err := json.Marshal(core.Kinds)
	if err != nil {
		return fmt.Errorf("encoding kind list: %w", err)
	}

	js := fmt.Sprintf(`(function() {
	var root = %s;
	var names = %s;
	for (var i = 0; i < names.length; i++) {
		(function(kind) {
			var C = class extends Error {
				constructor(msg) {
					super(msg);
					this.name = kind;
				}
			};
			Object.defineProperty(C, 'name', { value: kind });
			root.errors[kind] = C;
		})(names[i]);
	}
	root.throwKind = function(kind, message) {
		if (kind === 'TypeError') throw new TypeError(message);
		var C = root.errors[kind];
		if (C) throw new C(message);
		throw new Error(message);
	};
	root.unwrap = function(raw) {
		var r = JSON.parse(raw);
		if (r.err) root.throwKind(r.err.kind, r.err.message);
		return r.ok;
	};
})();`, bridgeExpr, names)

	return rt.Eval(js)
}
