package bootstrap

import (
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// Install wires the whole script-facing surface onto a fresh engine context,
// in dependency order. It runs exactly once per context, before any user
// script. The returned closer releases native resources owned by the
// registrars (the storage database).
func Install(rt core.JSRuntime, cfg core.RuntimeConfig, logs *core.LogBuffer) (func() error, error) {
	cfg = cfg.Normalize()

	if err := SetupBridge(rt); err != nil {
		return nil, fmt.Errorf("installing bridge: %w", err)
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"errors", func() error { return SetupErrors(rt) }},
		{"encoding", func() error { return SetupEncoding(rt) }},
		{"console", func() error { return SetupConsole(rt, logs) }},
		{"url", func() error { return SetupURL(rt) }},
		{"navigator", func() error { return SetupNavigator(rt) }},
		{"fs", func() error { return SetupFS(rt) }},
		{"os", func() error { return SetupOS(rt, cfg) }},
		{"testing", func() error { return SetupTesting(rt) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("installing %s: %w", s.name, err)
		}
	}

	closeStorage, err := SetupWebStorage(rt, cfg)
	if err != nil {
		return nil, fmt.Errorf("installing storage: %w", err)
	}

	// The namespace assembly freezes what the registrars built, so it runs
	// last.
	if err := SetupNamespace(rt, cfg.Profile); err != nil {
		closeStorage()
		return nil, fmt.Errorf("installing namespace: %w", err)
	}

	return closeStorage, nil
}
