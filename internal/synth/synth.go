// Package synth turns an entity name and variant into the four scaffolded
// source files.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kindred-app/crudjen"
	"github.com/kindred-app/crudjen/internal/bank"
	"github.com/kindred-app/crudjen/internal/entity"
)

var (
	// ErrInvalidAPIPrefix is returned for an API prefix that is not an
	// absolute path without a trailing slash.
	ErrInvalidAPIPrefix = errors.New("invalid API prefix")

	// ErrDuplicateSlug is returned when two entities of a batch share a
	// collection.
	ErrDuplicateSlug = errors.New("duplicate slug")

	// ErrNoEntities is returned for an empty batch.
	ErrNoEntities = errors.New("no entities to synthesize")
)

type options struct {
	slug       string
	apiPrefix  string
	importBase string
}

// Option configures synthesis.
type Option func(*options)

// WithSlug replaces the suffix-pluralized slug of a single entity.
func WithSlug(slug string) Option {
	return func(o *options) {
		o.slug = slug
	}
}

// WithAPIPrefix mounts the generated routes under prefix instead of
// bank.DefaultAPIPrefix.
func WithAPIPrefix(prefix string) Option {
	return func(o *options) {
		o.apiPrefix = prefix
	}
}

// WithRegistry makes SynthesizeAll also emit the registry file. importBase is
// the import path of the directory holding the entity packages.
func WithRegistry(importBase string) Option {
	return func(o *options) {
		o.importBase = importBase
	}
}

func collect(opts []Option) (options, error) {
	o := options{apiPrefix: bank.DefaultAPIPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	if !strings.HasPrefix(o.apiPrefix, "/") || (len(o.apiPrefix) > 1 && strings.HasSuffix(o.apiPrefix, "/")) || strings.ContainsAny(o.apiPrefix, " :*") {
		return o, fmt.Errorf("%w: %q", ErrInvalidAPIPrefix, o.apiPrefix)
	}
	return o, nil
}

// NewEntity validates name and variant and derives the entity's names once.
// Only WithSlug is consulted.
func NewEntity(name string, v entity.Variant, opts ...Option) (entity.Entity, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	names, err := entity.NewNames(name, o.slug)
	if err != nil {
		return entity.Entity{}, err
	}
	if _, err := bank.Select(v); err != nil {
		return entity.Entity{}, err
	}
	return entity.Entity{Names: names, Variant: v}, nil
}

func newJennyList(o options) *crudjen.JennyList[entity.Entity] {
	jl := crudjen.JennyListWithNamer(func(e entity.Entity) string {
		return e.ID()
	})
	ropts := bank.RenderOptions{APIPrefix: o.apiPrefix}
	for _, k := range bank.Kinds {
		jl.AppendOneToOne(NewArtifactJenny(k, ropts))
	}
	jl.AddPostprocessors(crudjen.GoFormat())
	return jl
}

// Synthesize produces the type definitions, persistence service, handler set
// and route table for one entity. It either returns all four files or an
// error.
func Synthesize(name string, v entity.Variant, opts ...Option) (crudjen.Files, error) {
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}
	e, err := NewEntity(name, v, opts...)
	if err != nil {
		return nil, err
	}

	fl, err := newJennyList(o).Generate(e)
	if err != nil {
		return nil, err
	}
	if len(fl) != len(bank.Kinds) {
		return nil, fmt.Errorf("synthesized %d files for %s, want %d", len(fl), e.ID(), len(bank.Kinds))
	}

	slog.LogAttrs(context.Background(), slog.LevelDebug, "synthesized entity",
		slog.String("entity", e.Pascal),
		slog.String("variant", e.Variant.String()),
		slog.String("slug", e.Slug),
	)
	return fl, nil
}

// SynthesizeAll produces the four files of every entity in one pass, plus
// the registry file when WithRegistry is given. Entities sharing a package or
// a slug fail the whole batch.
func SynthesizeAll(entities []entity.Entity, opts ...Option) (crudjen.Files, error) {
	if len(entities) == 0 {
		return nil, ErrNoEntities
	}
	o, err := collect(opts)
	if err != nil {
		return nil, err
	}

	slugs := make(map[string]string, len(entities))
	for _, e := range entities {
		if prior, has := slugs[e.Slug]; has {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateSlug, e.Slug, prior, e.Pascal)
		}
		slugs[e.Slug] = e.Pascal
	}

	jl := newJennyList(o)
	if o.importBase != "" {
		jl.AppendManyToOne(RegistryJenny{importBase: o.importBase})
	}

	fl, err := jl.Generate(entities...)
	if err != nil {
		return nil, err
	}

	slog.LogAttrs(context.Background(), slog.LevelDebug, "synthesized batch",
		slog.Int("entities", len(entities)),
		slog.Int("files", len(fl)),
	)
	return fl, nil
}
