package synth

import (
	"path"

	"github.com/kindred-app/crudjen"
	"github.com/kindred-app/crudjen/internal/bank"
	"github.com/kindred-app/crudjen/internal/entity"
)

// ArtifactJenny renders one artifact kind for an entity.
type ArtifactJenny struct {
	kind bank.Kind
	opts bank.RenderOptions
}

var _ crudjen.OneToOne[entity.Entity] = ArtifactJenny{}

// NewArtifactJenny returns the jenny for an artifact kind.
func NewArtifactJenny(k bank.Kind, opts bank.RenderOptions) ArtifactJenny {
	return ArtifactJenny{kind: k, opts: opts}
}

func (j ArtifactJenny) JennyName() string {
	switch j.kind {
	case bank.TypeDefinitions:
		return "TypesJenny"
	case bank.PersistenceService:
		return "ServiceJenny"
	case bank.HandlerSet:
		return "HandlerJenny"
	case bank.RouteTable:
		return "RoutesJenny"
	}
	return "ArtifactJenny(" + j.kind.String() + ")"
}

// Generate renders the artifact into <package>/<conventional file name>.
func (j ArtifactJenny) Generate(e entity.Entity) (*crudjen.File, error) {
	set, err := bank.Select(e.Variant)
	if err != nil {
		return nil, err
	}
	data, err := set.Template(j.kind).Render(e.Names, j.opts)
	if err != nil {
		return nil, err
	}
	return crudjen.NewFile(path.Join(e.Package, j.kind.Filename(e.Package)), data, j), nil
}

// RegistryJenny renders the file that registers every scaffolded package with
// a server.
type RegistryJenny struct {
	importBase string
}

var _ crudjen.ManyToOne[entity.Entity] = RegistryJenny{}

func (j RegistryJenny) JennyName() string {
	return "RegistryJenny"
}

// Generate renders the registry for all entities. It is a no-op for an empty
// batch.
func (j RegistryJenny) Generate(es ...entity.Entity) (*crudjen.File, error) {
	if len(es) == 0 {
		return nil, nil
	}
	names := make([]entity.Names, len(es))
	for i, e := range es {
		names[i] = e.Names
	}
	data, err := bank.RenderRegistry(j.importBase, names...)
	if err != nil {
		return nil, err
	}
	return crudjen.NewFile(bank.RegistryFilename, data, j), nil
}
