package crudjen

import (
	"fmt"
	"go/format"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// File is a single generated file.
type File struct {
	// The relative path to which the generated file should be written, using
	// forward slashes.
	RelativePath string

	// Contents of the generated file.
	Data []byte

	// From is the stack of jennies responsible for producing this File.
	From []NamedJenny
}

// NewFile creates a File attributed to the given jennies.
func NewFile(relpath string, data []byte, from ...NamedJenny) *File {
	return &File{
		RelativePath: relpath,
		Data:         data,
		From:         from,
	}
}

// Exists reports whether the File has contents. A File with no contents is
// treated as a no-op by a [JennyList].
func (f File) Exists() bool {
	return len(f.Data) > 0
}

// Validate checks that the File has a clean, relative path.
func (f File) Validate() error {
	switch {
	case f.RelativePath == "":
		return fmt.Errorf("file produced by %s has an empty path", jennystack(f.From))
	case filepath.IsAbs(f.RelativePath) || strings.HasPrefix(f.RelativePath, "/"):
		return fmt.Errorf("files must have relative paths, got %s from %s", f.RelativePath, jennystack(f.From))
	case path.Clean(f.RelativePath) != f.RelativePath || strings.HasPrefix(f.RelativePath, "../"):
		return fmt.Errorf("file path %s from %s is not clean", f.RelativePath, jennystack(f.From))
	}
	return nil
}

// Files is a set of File objects.
//
// A Files is [Files.Validate] if it contains no duplicate paths and every File
// is itself valid.
type Files []File

// Validate checks that every File in the set is valid and that no two Files
// share a path.
func (fl Files) Validate() error {
	var result *multierror.Error
	seen := make(map[string]File, len(fl))
	for _, f := range fl {
		if err := f.Validate(); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if prior, has := seen[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("multiple files at %s, from %s and %s", f.RelativePath, jennystack(prior.From), jennystack(f.From)))
			continue
		}
		seen[f.RelativePath] = f
	}
	return result.ErrorOrNil()
}

// Paths returns the relative paths of all Files, sorted.
func (fl Files) Paths() []string {
	paths := make([]string, 0, len(fl))
	for _, f := range fl {
		paths = append(paths, f.RelativePath)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns the File at the given relative path.
func (fl Files) Lookup(relpath string) (File, bool) {
	for _, f := range fl {
		if f.RelativePath == relpath {
			return f, true
		}
	}
	return File{}, false
}

// FileMapper takes a File and transforms it into a new File.
type FileMapper func(File) (File, error)

// GoFormat returns a FileMapper that runs gofmt over every .go File. Files
// with other extensions are passed through untouched.
func GoFormat() FileMapper {
	return func(f File) (File, error) {
		if filepath.Ext(f.RelativePath) != ".go" {
			return f, nil
		}
		src, err := format.Source(f.Data)
		if err != nil {
			return f, fmt.Errorf("gofmt %s: %w", f.RelativePath, err)
		}
		f.Data = src
		return f, nil
	}
}

func jennystack(s []NamedJenny) string {
	if len(s) == 0 {
		return "<unknown jenny>"
	}
	names := make([]string, len(s))
	for i, j := range s {
		names[i] = j.JennyName()
	}
	return strings.Join(names, ":")
}
