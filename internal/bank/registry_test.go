package bank

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"testing"

	"github.com/matryer/is"

	"github.com/kindred-app/crudjen/internal/entity"
)

// registryImporter resolves the imports of a registry file to minimal
// packages declaring only what the registry uses.
type registryImporter struct {
	pkgs map[string]*types.Package
}

func newRegistryImporter(importBase string, names ...entity.Names) *registryImporter {
	fiber := types.NewPackage("github.com/gofiber/fiber/v2", "fiber")
	app := types.NewNamed(types.NewTypeName(token.NoPos, fiber, "App", nil), types.NewStruct(nil, nil), nil)
	fiber.Scope().Insert(app.Obj())
	fiber.MarkComplete()

	mongo := types.NewPackage("go.mongodb.org/mongo-driver/mongo", "mongo")
	coll := types.NewNamed(types.NewTypeName(token.NoPos, mongo, "Collection", nil), types.NewStruct(nil, nil), nil)
	mongo.Scope().Insert(coll.Obj())
	mongo.MarkComplete()

	imp := &registryImporter{pkgs: map[string]*types.Package{
		fiber.Path(): fiber,
		mongo.Path(): mongo,
	}}
	for _, n := range names {
		pkg := types.NewPackage(path.Join(importBase, n.Package), n.Package)
		pkg.Scope().Insert(types.NewConst(token.NoPos, pkg, "CollectionName", types.Typ[types.UntypedString], constant.MakeString(n.Slug)))
		params := types.NewTuple(
			types.NewVar(token.NoPos, pkg, "app", types.NewPointer(app)),
			types.NewVar(token.NoPos, pkg, "collections", types.NewMap(types.Typ[types.String], types.NewPointer(coll))),
		)
		pkg.Scope().Insert(types.NewFunc(token.NoPos, pkg, "Routes", types.NewSignatureType(nil, nil, nil, params, nil, false)))
		pkg.MarkComplete()
		imp.pkgs[pkg.Path()] = pkg
	}
	return imp
}

func (r *registryImporter) Import(p string) (*types.Package, error) {
	if pkg, ok := r.pkgs[p]; ok {
		return pkg, nil
	}
	return nil, fmt.Errorf("unexpected import %q", p)
}

func typeCheckRegistry(t *testing.T, importBase string, names ...entity.Names) error {
	t.Helper()
	src, err := RenderRegistry(importBase, names...)
	if err != nil {
		t.Fatalf("RenderRegistry() error = %v", err)
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, RegistryFilename, src, 0)
	if err != nil {
		t.Fatalf("registry does not parse: %v", err)
	}
	conf := types.Config{Importer: newRegistryImporter(importBase, names...)}
	_, err = conf.Check(path.Base(importBase), fset, []*ast.File{f}, nil)
	return err
}

func TestRegistryTypeChecks(t *testing.T) {
	tests := []struct {
		name  string
		names []entity.Names
	}{
		{"plain names", []entity.Names{jobNames, spotNames}},
		{"framework package names", []entity.Names{
			jobNames,
			{Pascal: "Mongo", Slug: "mongos", Package: "mongo"},
			{Pascal: "Fiber", Slug: "fibers", Package: "fiber"},
		}},
		{"local names", []entity.Names{
			{Pascal: "App", Slug: "apps", Package: "app"},
			{Pascal: "Collections", Slug: "collectionss", Package: "collections"},
			{Pascal: "Handlers", Slug: "handlerss", Package: "handlers"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := typeCheckRegistry(t, "example.com/gen/handlers", tt.names...); err != nil {
				t.Errorf("registry does not type-check: %v", err)
			}
		})
	}
}

func TestRenderRegistryDuplicatePackage(t *testing.T) {
	is := is.New(t)

	_, err := RenderRegistry("example.com/gen/handlers", jobNames, entity.Names{Pascal: "JOB", Slug: "job-posts", Package: "job"})
	is.True(err != nil) // two entities cannot share an import name
}
