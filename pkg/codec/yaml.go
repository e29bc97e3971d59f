package codec

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// YAML encodes the collection as a YAML sequence with the same fields as JSON.
type YAML struct{}

// NewYAML creates a YAML codec.
func NewYAML() *YAML {
	return &YAML{}
}

func (c *YAML) Name() string { return "yaml" }

func (c *YAML) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(nonNil(notes)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *YAML) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %w", core.ErrCorrupt, err)
	}
	return nonNil(notes), nil
}
