package bootstrap

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/minideno/minideno/internal/core"
)

// SetupNavigator stores the host identity on bridge.web and installs the
// navigator global over it.
func SetupNavigator(rt core.JSRuntime) error {
	if err := requireBridge(rt, "web"); err != nil {
		return err
	}

	js := fmt.Sprintf(`(function() {
	var root = %s;
	root.web.platform = %q;
	root.web.language = %q;
	var nav = {
		userAgent: 'minideno/1.0',
		platform: root.web.platform,
		language: root.web.language,
		languages: Object.freeze([root.web.language]),
	};
	Object.defineProperty(globalThis, 'navigator', {
		value: Object.freeze(nav),
		writable: false,
		configurable: true,
		enumerable: true,
	});
})();`, bridgeExpr, navigatorPlatform(), navigatorLanguage())

	return rt.Eval(js)
}

// navigatorPlatform reports the values browsers historically use for each
// host rather than the literal GOOS/GOARCH pair.
func navigatorPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "MacIntel"
	case "windows":
		return "Win32"
	default:
		if runtime.GOARCH == "arm64" {
			return "Linux armv81"
		}
		return "Linux x86_64"
	}
}

// navigatorLanguage derives a BCP 47 tag from the process locale, falling
// back to en-US when no locale is set.
func navigatorLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en-US"
}
