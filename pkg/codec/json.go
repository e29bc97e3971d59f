package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
)

// JSON encodes the collection as an array of objects with the fields
// id, title, content, createdAt and updatedAt.
type JSON struct {
	// Indent pretty-prints the output when non-empty.
	Indent string
}

// NewJSON creates a JSON codec indented with two spaces.
func NewJSON() *JSON {
	return &JSON{Indent: "  "}
}

func (c *JSON) Name() string { return "json" }

func (c *JSON) Encode(notes []core.Note) ([]byte, error) {
	if c.Indent == "" {
		return json.Marshal(nonNil(notes))
	}
	return json.MarshalIndent(nonNil(notes), "", c.Indent)
}

func (c *JSON) Decode(data []byte) ([]core.Note, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []core.Note{}, nil
	}

	var notes []core.Note
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&notes); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", core.ErrCorrupt, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json array", core.ErrCorrupt)
	}
	return nonNil(notes), nil
}
