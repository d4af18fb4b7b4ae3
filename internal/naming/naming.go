// Package naming derives the identifier, slug and package forms of an entity
// name.
//
// Every form is computed from the caller's name with no linguistic
// knowledge. Slug pluralizes by appending "s", so "Category" becomes
// "categorys" and "News" becomes "newss". Callers that need a different
// plural pass an explicit slug, checked with [ValidateSlug].
package naming

import (
	"errors"
	"fmt"
	"go/token"
	"regexp"
	"strings"
)

var (
	// ErrEmptyName is returned for an empty entity name.
	ErrEmptyName = errors.New("entity name is required")

	// ErrInvalidName is returned for a name that cannot be used as a Go
	// identifier or package name.
	ErrInvalidName = errors.New("invalid entity name")

	// ErrInvalidSlug is returned for a slug override that cannot be used as a
	// collection key and URL path segment.
	ErrInvalidSlug = errors.New("invalid slug")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// reservedPackages are package forms whose handler file <pkg>.go would
// collide with another artifact of the same package.
var reservedPackages = map[string]bool{
	"types":   true,
	"service": true,
	"routes":  true,
}

// Identifier returns the name used as the prefix of every generated type and
// function. The caller's casing is kept as is.
func Identifier(name string) string {
	return name
}

// Slug returns the lowercase plural used for the collection key and the URL
// path segment.
func Slug(name string) string {
	return strings.ToLower(name) + "s"
}

// Package returns the lowercase name used for the Go package and its
// directory.
func Package(name string) string {
	return strings.ToLower(name)
}

// Validate checks that name can be used for every derived form.
func Validate(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if name == "_" || !token.IsIdentifier(name) {
		return fmt.Errorf("%w: %q is not a valid Go identifier", ErrInvalidName, name)
	}
	pkg := Package(name)
	if token.IsKeyword(pkg) {
		return fmt.Errorf("%w: package name %q is a Go keyword", ErrInvalidName, pkg)
	}
	if reservedPackages[pkg] {
		return fmt.Errorf("%w: package name %q clashes with the generated %s.go", ErrInvalidName, pkg, pkg)
	}
	return nil
}

// ValidateSlug checks an explicit slug override.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q must be lowercase letters, digits, '-' or '_'", ErrInvalidSlug, slug)
	}
	return nil
}
