// Package entity holds the description of a single entity to scaffold.
package entity

import (
	"fmt"

	"github.com/kindred-app/crudjen/internal/naming"
)

// Variant is the structural family of an entity.
type Variant string

const (
	// Plain entities carry the generic fields only.
	Plain Variant = "plain"
	// Geolocated entities add a location field and proximity search.
	Geolocated Variant = "geolocated"
)

// Variants lists every recognized variant.
var Variants = []Variant{Plain, Geolocated}

// ParseVariant converts a token to a Variant. Unknown tokens are returned
// unchanged together with an error so the caller can decide how to report
// them.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return Variant(s), fmt.Errorf("unknown variant %q (valid: %s, %s)", s, Plain, Geolocated)
}

func (v Variant) String() string {
	return string(v)
}

// Names are the derived forms of an entity name. They are computed once and
// reused verbatim by every artifact.
type Names struct {
	// Pascal prefixes every generated type and function, e.g. "Cafe".
	Pascal string
	// Slug is the collection key and URL path segment, e.g. "cafes".
	Slug string
	// Package is the Go package name and destination directory, e.g. "cafe".
	Package string
}

// NewNames validates name and derives its forms. A non-empty slug replaces
// the default suffix pluralization.
func NewNames(name, slug string) (Names, error) {
	if err := naming.Validate(name); err != nil {
		return Names{}, err
	}
	if slug == "" {
		slug = naming.Slug(name)
	} else if err := naming.ValidateSlug(slug); err != nil {
		return Names{}, err
	}
	return Names{
		Pascal:  naming.Identifier(name),
		Slug:    slug,
		Package: naming.Package(name),
	}, nil
}

// Entity is the input to every scaffolding jenny.
type Entity struct {
	Names
	Variant Variant
}

// ID names the entity in error messages and logs.
func (e Entity) ID() string {
	return fmt.Sprintf("%s (%s)", e.Pascal, e.Variant)
}
