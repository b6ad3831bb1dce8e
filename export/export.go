// Package export writes the generated instance table as YAML or JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/chromasphere/store"
)

// ErrUnknownFormat is returned for formats other than yaml and json
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the encoder
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml and json in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (expected yaml|json)", ErrUnknownFormat, s)
	}
}

// Row is one instance
type Row struct {
	Index    int        `json:"index" yaml:"index"`
	Position [3]float64 `json:"position" yaml:"position,flow"`
	World    [3]float64 `json:"world" yaml:"world,flow"`
	Color    string     `json:"color" yaml:"color"`
}

// Table is the exported document
type Table struct {
	Count     int        `json:"count" yaml:"count"`
	Radius    float64    `json:"radius" yaml:"radius"`
	Rotation  [3]float64 `json:"mesh_rotation" yaml:"mesh_rotation,flow"`
	Instances []Row      `json:"instances" yaml:"instances"`
}

// Build collects every instance of st; radius is recorded as given
func Build(st *store.Store, radius float64) (Table, error) {
	rot := st.Rotation()
	t := Table{
		Count:     st.Len(),
		Radius:    radius,
		Rotation:  [3]float64{rot.X, rot.Y, rot.Z},
		Instances: make([]Row, 0, st.Len()),
	}
	for i := range st.Len() {
		inst, err := st.At(i)
		if err != nil {
			return Table{}, err
		}
		world, err := st.WorldPosition(i)
		if err != nil {
			return Table{}, err
		}
		t.Instances = append(t.Instances, Row{
			Index:    i,
			Position: [3]float64{inst.Position.X, inst.Position.Y, inst.Position.Z},
			World:    [3]float64{world.X, world.Y, world.Z},
			Color:    inst.Color.Hex(),
		})
	}
	return t, nil
}

// Write encodes t to w
func Write(w io.Writer, t Table, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Read decodes a table written by Write
func Read(r io.Reader, f Format) (Table, error) {
	var t Table
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&t); err != nil {
			return Table{}, err
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&t); err != nil {
			return Table{}, err
		}
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return t, nil
}
