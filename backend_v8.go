//go:build v8

package minideno

import (
	"github.com/minideno/minideno/internal/core"
	"github.com/minideno/minideno/internal/v8engine"
)

const backendName = "v8"

func newBackend(cfg core.RuntimeConfig) (core.EngineBackend, error) {
	return v8engine.NewEngine(cfg)
}
