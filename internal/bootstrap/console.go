package bootstrap

import "github.com/minideno/minideno/internal/core"

// SetupConsole replaces globalThis.console with a Go-backed version that
// captures output into the runtime's log buffer.
func SetupConsole(rt core.JSRuntime, logs *core.LogBuffer) error {
	if err := rt.RegisterFunc("__md_console", func(level, message string) int {
		logs.Add(level, message)
		return 0
	}); err != nil {
		return err
	}

	consoleJS := `
(function() {
	var levels = ['log', 'info', 'warn', 'error', 'debug'];
	var con = {};
	function fmt(arg) {
		if (typeof arg === 'object' && arg !== null) {
			try {
				var s = JSON.stringify(arg);
				return s === undefined ? String(arg) : s;
			} catch (e) {
				return '[object Object]';
			}
		}
		return String(arg);
	}
	for (var i = 0; i < levels.length; i++) {
		(function(lvl) {
			con[lvl] = function() {
				var parts = [];
				for (var j = 0; j < arguments.length; j++) {
					parts.push(fmt(arguments[j]));
				}
				__md_console(lvl, parts.join(' '));
			};
		})(levels[i]);
	}
	con.assert = function(cond) {
		if (!cond) {
			var args = Array.prototype.slice.call(arguments, 1);
			con.error(args.length > 0 ? 'Assertion failed: ' + args.join(' ') : 'Assertion failed');
		}
	};
	globalThis.console = con;
})();
`
	return rt.Eval(consoleJS)
}
