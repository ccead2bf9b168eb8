// Package loader reads script files for execution. TypeScript sources are
// type-stripped with esbuild's Transform API before evaluation; there is no
// bundling and no module graph.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	esbuild "github.com/evanw/esbuild/pkg/api"
)

// Load reads the script at path and returns plain JavaScript source.
func Load(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading script %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return StripTypes(string(src), filepath.Base(path))
	}
	return string(src), nil
}

// StripTypes removes TypeScript syntax, leaving the JavaScript behind.
func StripTypes(source, name string) (string, error) {
	result := esbuild.Transform(source, esbuild.TransformOptions{
		Loader:     esbuild.LoaderTS,
		Target:     esbuild.ES2022,
		Sourcefile: name,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			loc := ""
			if e.Location != nil {
				loc = fmt.Sprintf("%s:%d:%d: ", e.Location.File, e.Location.Line, e.Location.Column)
			}
			msgs = append(msgs, loc+e.Text)
		}
		return "", fmt.Errorf("transforming %s: %s", name, strings.Join(msgs, "; "))
	}
	return string(result.Code), nil
}
