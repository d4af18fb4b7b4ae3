package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"

	"github.com/kindred-app/crudjen/internal/entity"
	"github.com/kindred-app/crudjen/internal/naming"
	"github.com/kindred-app/crudjen/internal/synth"
)

const sample = `
entities:
  - name: Job
  - name: Cafe
    variant: geolocated
  - name: Person
    slug: people
`

func TestParseEntities(t *testing.T) {
	is := is.New(t)

	m, err := Parse(strings.NewReader(sample))
	is.NoErr(err)
	ents, err := m.Entities()
	is.NoErr(err)

	want := []entity.Entity{
		{Names: entity.Names{Pascal: "Job", Slug: "jobs", Package: "job"}, Variant: entity.Plain},
		{Names: entity.Names{Pascal: "Cafe", Slug: "cafes", Package: "cafe"}, Variant: entity.Geolocated},
		{Names: entity.Names{Pascal: "Person", Slug: "people", Package: "person"}, Variant: entity.Plain},
	}
	if diff := cmp.Diff(want, ents); diff != "" {
		t.Errorf("Entities() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"empty document", "", synth.ErrNoEntities, ""},
		{"no entities", "entities: []\n", synth.ErrNoEntities, ""},
		{"unknown key", "entities:\n  - name: Job\n    kind: plain\n", nil, "field kind not found"},
		{"unknown top-level key", "entity:\n  - name: Job\n", nil, "field entity not found"},
		{"not yaml", "entities: [\n", nil, "failed to parse manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse() error = %v, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestEntitiesRejects(t *testing.T) {
	is := is.New(t)

	m, err := Parse(strings.NewReader("entities:\n  - name: Job\n  - name: Cafe\n    variant: timestamped\n"))
	is.NoErr(err)
	_, err = m.Entities()
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "entities[1]"))
	is.True(strings.Contains(err.Error(), `unknown variant "timestamped"`))

	m, err = Parse(strings.NewReader("entities:\n  - name: \"\"\n"))
	is.NoErr(err)
	_, err = m.Entities()
	is.True(errors.Is(err, naming.ErrEmptyName))
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "entities.yaml")
	is.NoErr(os.WriteFile(path, []byte(sample), 0o644))
	m, err := Load(path)
	is.NoErr(err)
	is.Equal(len(m.Entries), 3)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	is.True(errors.Is(err, os.ErrNotExist))
}
