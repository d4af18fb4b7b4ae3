package bank

import (
	"bytes"
	"fmt"
	"path"
	"sort"

	"github.com/kindred-app/crudjen/internal/entity"
)

// RegistryFilename is the name of the file that wires every scaffolded
// package into a server.
const RegistryFilename = "routes_gen.go"

// RegistryEntry is one scaffolded package referenced by the registry.
type RegistryEntry struct {
	Package string
	// Alias is the import name, kept apart from the framework imports.
	Alias  string
	Import string
	Slug   string
}

// registryImports are the import names the registry declares besides the
// entity packages.
var registryImports = map[string]bool{
	"fiber": true,
	"mongo": true,
}

// RegistryAlias returns the name the registry imports an entity package
// under.
func RegistryAlias(pkg string) string {
	return pkg + "pkg"
}

type registryData struct {
	Package string
	Entries []RegistryEntry
}

// RenderRegistry renders the registry file for the packages scaffolded under
// importBase. The registry lives in the package named after the last element
// of importBase.
func RenderRegistry(importBase string, names ...entity.Names) ([]byte, error) {
	if importBase == "" {
		return nil, fmt.Errorf("registry requires an import base")
	}
	data := registryData{Package: path.Base(importBase)}
	seen := make(map[string]string, len(names))
	for _, n := range names {
		alias := RegistryAlias(n.Package)
		if registryImports[alias] {
			return nil, fmt.Errorf("registry import name %q of %s clashes with a framework import", alias, n.Pascal)
		}
		if prior, has := seen[alias]; has {
			return nil, fmt.Errorf("registry import name %q used by %s and %s", alias, prior, n.Pascal)
		}
		seen[alias] = n.Pascal
		data.Entries = append(data.Entries, RegistryEntry{
			Package: n.Package,
			Alias:   alias,
			Import:  path.Join(importBase, n.Package),
			Slug:    n.Slug,
		})
	}
	sort.Slice(data.Entries, func(i, j int) bool {
		return data.Entries[i].Package < data.Entries[j].Package
	})

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "registry.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("render registry: %w", err)
	}
	return buf.Bytes(), nil
}
