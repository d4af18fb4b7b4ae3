// Package manifest reads the YAML file listing the entities of a batch.
//
//	entities:
//	  - name: Cafe
//	    variant: geolocated
//	  - name: Person
//	    slug: people
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kindred-app/crudjen/internal/entity"
	"github.com/kindred-app/crudjen/internal/synth"
)

// Manifest is a batch of entities to scaffold.
type Manifest struct {
	Entries []Entry `yaml:"entities"`
}

// Entry is one entity of a manifest. Variant defaults to plain.
type Entry struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant,omitempty"`
	Slug    string `yaml:"slug,omitempty"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, synth.ErrNoEntities
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Entries) == 0 {
		return nil, synth.ErrNoEntities
	}
	return &m, nil
}

// Entities validates every entry and derives its names.
func (m *Manifest) Entities() ([]entity.Entity, error) {
	out := make([]entity.Entity, 0, len(m.Entries))
	for i, entry := range m.Entries {
		v := entity.Plain
		if entry.Variant != "" {
			parsed, err := entity.ParseVariant(entry.Variant)
			if err != nil {
				return nil, fmt.Errorf("entities[%d]: %w", i, err)
			}
			v = parsed
		}
		e, err := synth.NewEntity(entry.Name, v, synth.WithSlug(entry.Slug))
		if err != nil {
			return nil, fmt.Errorf("entities[%d]: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
