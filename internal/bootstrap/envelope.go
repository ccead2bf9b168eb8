package bootstrap

import (
	"encoding/json"
	"fmt"

	"github.com/minideno/minideno/internal/core"
)

// Native results cross the boundary as a JSON envelope: {"ok": value} on
// success, {"err": {"kind", "message"}} on failure. The JS side unwraps the
// envelope and throws the constructor matching the kind, so every native
// failure surfaces as exactly one typed exception.

type envErr struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type envelope struct {
	OK  any     `json:"ok"`
	Err *envErr `json:"err,omitempty"`
}

func okJSON(v any) string {
	raw, err := json.Marshal(envelope{OK: v})
	if err != nil {
		return errJSON(core.KindOther, fmt.Sprintf("encoding result: %v", err))
	}
	return string(raw)
}

func errJSON(kind core.Kind, message string) string {
	raw, err := json.Marshal(envelope{Err: &envErr{Kind: string(kind), Message: message}})
	if err != nil {
		return `{"err":{"kind":"Other","message":"encoding error envelope"}}`
	}
	return string(raw)
}

func errFromGo(err error) string {
	return errJSON(core.Classify(err), err.Error())
}
