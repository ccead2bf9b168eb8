//go:build v8

// Package v8engine is the V8 engine backend, selected with -tags v8.
package v8engine

import (
	"fmt"
	"time"

	"github.com/minideno/minideno/internal/bootstrap"
	"github.com/minideno/minideno/internal/core"
	v8 "github.com/tommie/v8go"
)

// Engine owns one V8 isolate and context with the full surface installed.
type Engine struct {
	rt      *v8Runtime
	cfg     core.RuntimeConfig
	logs    *core.LogBuffer
	cleanup func() error
}

var _ core.EngineBackend = (*Engine)(nil)

func NewEngine(cfg core.RuntimeConfig) (*Engine, error) {
	cfg = cfg.Normalize()

	iso := v8.NewIsolate()
	ctx := v8.NewContext(iso)
	rt := &v8Runtime{iso: iso, ctx: ctx}

	logs := core.NewLogBuffer(cfg.MaxLogEntries)
	cleanup, err := bootstrap.Install(rt, cfg, logs)
	if err != nil {
		ctx.Close()
		iso.Dispose()
		return nil, fmt.Errorf("bootstrapping runtime: %w", err)
	}

	return &Engine{rt: rt, cfg: cfg, logs: logs, cleanup: cleanup}, nil
}

func (e *Engine) timeout() time.Duration {
	return time.Duration(e.cfg.ExecutionTimeoutMS) * time.Millisecond
}

// Execute runs a script to completion and drains the microtask queue.
func (e *Engine) Execute(source string) *core.Result {
	start := time.Now()
	res := &core.Result{}
	if err := e.rt.Eval(source); err != nil {
		res.Error = err.Error()
	} else {
		e.rt.RunMicrotasks()
	}
	res.Logs = e.logs.Drain()
	res.Duration = time.Since(start)
	return res
}

// Eval evaluates an expression and returns its settled value as JSON.
func (e *Engine) Eval(expr string) (string, error) {
	return bootstrap.AwaitJSON(e.rt, expr, e.timeout())
}

// RunTests drives the tests registered by previously executed scripts.
func (e *Engine) RunTests() *core.Result {
	start := time.Now()
	res := &core.Result{}
	summary, err := bootstrap.RunTests(e.rt, e.timeout())
	if err != nil {
		res.Error = err.Error()
	} else {
		res.Tests = summary
	}
	res.Logs = e.logs.Drain()
	res.Duration = time.Since(start)
	return res
}

// Close releases the storage database, the context and the isolate.
func (e *Engine) Close() {
	if e.cleanup != nil {
		_ = e.cleanup()
		e.cleanup = nil
	}
	if e.rt != nil {
		e.rt.ctx.Close()
		e.rt.iso.Dispose()
		e.rt = nil
	}
}
