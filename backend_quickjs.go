//go:build !v8

package minideno

import (
	"github.com/minideno/minideno/internal/core"
	"github.com/minideno/minideno/internal/quickjs"
)

const backendName = "quickjs"

func newBackend(cfg core.RuntimeConfig) (core.EngineBackend, error) {
	return quickjs.NewEngine(cfg)
}
