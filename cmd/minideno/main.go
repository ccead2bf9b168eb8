// Command minideno runs scripts against the embedded runtime.
//
//	minideno run <script.js|script.ts> [args...]
//	minideno eval <expression>
//	minideno test <script.js|script.ts> [args...]
package main

import (
	"fmt"
	"os"

	minideno "github.com/minideno/minideno"
	"github.com/minideno/minideno/internal/loader"
	"github.com/rs/zerolog"
)

func main() {
	_, noColor := os.LookupEnv("NO_COLOR")
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}).
		With().Timestamp().Logger()

	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runScript(logger, os.Args[2], os.Args[3:], false))
	case "test":
		os.Exit(runScript(logger, os.Args[2], os.Args[3:], true))
	case "eval":
		os.Exit(evalExpr(logger, os.Args[2]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: minideno run|test <script> [args...] | minideno eval <expression>")
}

func runScript(logger zerolog.Logger, path string, args []string, runTests bool) int {
	source, err := loader.Load(path)
	if err != nil {
		logger.Error().Err(err).Msg("loading script")
		return 1
	}

	rt, err := minideno.New(minideno.Config{Args: args})
	if err != nil {
		logger.Error().Err(err).Msg("starting runtime")
		return 1
	}
	defer rt.Close()

	res := rt.Execute(source)
	emitLogs(logger, res.Logs)
	if res.Error != "" {
		logger.Error().Str("script", path).Msg(res.Error)
		return 1
	}

	if !runTests {
		return 0
	}

	tres := rt.RunTests()
	emitLogs(logger, tres.Logs)
	if tres.Error != "" {
		logger.Error().Str("script", path).Msg(tres.Error)
		return 1
	}
	s := tres.Tests
	logger.Info().
		Int("passed", s.Passed).
		Int("failed", s.Failed).
		Int("ignored", s.Ignored).
		Dur("duration", tres.Duration).
		Msg("test run complete")
	if s.Failed > 0 {
		return 1
	}
	return 0
}

func evalExpr(logger zerolog.Logger, expr string) int {
	rt, err := minideno.New(minideno.Config{})
	if err != nil {
		logger.Error().Err(err).Msg("starting runtime")
		return 1
	}
	defer rt.Close()

	value, err := rt.Eval(expr)
	if err != nil {
		logger.Error().Msg(err.Error())
		return 1
	}
	fmt.Println(value)
	return 0
}

func emitLogs(logger zerolog.Logger, logs []minideno.LogEntry) {
	for _, entry := range logs {
		switch entry.Level {
		case "error":
			logger.Error().Msg(entry.Message)
		case "warn":
			logger.Warn().Msg(entry.Message)
		case "debug":
			logger.Debug().Msg(entry.Message)
		default:
			logger.Info().Msg(entry.Message)
		}
	}
}
