// Package codec provides the serializers that turn a note collection into
// the single blob kept by a KV adapter.
package codec

import (
	"fmt"
	"strings"

	"github.com/aretw0/jot/pkg/core"
)

// Default is the codec used when none is configured.
var Default core.Codec = NewJSON()

// ByName returns the codec registered under name (case-insensitive).
// An empty name resolves to Default.
func ByName(name string) (core.Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "":
		return Default, nil
	case "json":
		return NewJSON(), nil
	case "yaml", "yml":
		return NewYAML(), nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// Ext returns the file extension conventionally used for c.
func Ext(c core.Codec) string {
	return "." + c.Name()
}

func nonNil(notes []core.Note) []core.Note {
	if notes == nil {
		return []core.Note{}
	}
	return notes
}
