//go:build !v8

// Package quickjs is the default engine backend, built on modernc.org/quickjs
// (a pure-Go QuickJS translation, no cgo).
package quickjs

import (
	"fmt"
	"time"

	"github.com/minideno/minideno/internal/bootstrap"
	"github.com/minideno/minideno/internal/core"
	"modernc.org/quickjs"
)

// Engine owns one QuickJS VM with the full surface installed. The bridge is
// built exactly once here, before any user script runs.
type Engine struct {
	rt      *qjsRuntime
	cfg     core.RuntimeConfig
	logs    *core.LogBuffer
	cleanup func() error
}

var _ core.EngineBackend = (*Engine)(nil)

func NewEngine(cfg core.RuntimeConfig) (*Engine, error) {
	cfg = cfg.Normalize()

	vm, err := quickjs.NewVM()
	if err != nil {
		return nil, fmt.Errorf("creating QuickJS VM: %w", err)
	}

	rt := &qjsRuntime{vm: vm}
	logs := core.NewLogBuffer(cfg.MaxLogEntries)
	cleanup, err := bootstrap.Install(rt, cfg, logs)
	if err != nil {
		vm.Close()
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

// Close releases the storage database and the VM.
func (e *Engine) Close() {
	if e.cleanup != nil {
		_ = e.cleanup()
		e.cleanup = nil
	}
	if e.rt != nil {
		e.rt.vm.Close()
		e.rt = nil
	}
}
