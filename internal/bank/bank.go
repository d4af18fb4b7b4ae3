// Package bank holds the templates of the four scaffolded artifacts.
//
// There is one template per artifact kind. Each template is driven by a
// [Model]: the field list and capabilities of a variant. A geolocated entity
// is a plain entity plus the [Proximity] capability, so both variants share
// every template.
package bank

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"text/template"

	"github.com/kindred-app/crudjen/internal/entity"
)

// ErrUnsupportedVariant is returned by [Select] for an unknown variant.
var ErrUnsupportedVariant = errors.New("unsupported variant")

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("bank").ParseFS(templateFS, "templates/*.tmpl"))

// Kind is the kind of a scaffolded artifact.
type Kind int

const (
	TypeDefinitions Kind = iota
	PersistenceService
	HandlerSet
	RouteTable
)

// Kinds lists every artifact kind in generation order.
var Kinds = []Kind{TypeDefinitions, PersistenceService, HandlerSet, RouteTable}

func (k Kind) String() string {
	switch k {
	case TypeDefinitions:
		return "types"
	case PersistenceService:
		return "service"
	case HandlerSet:
		return "handler"
	case RouteTable:
		return "routes"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Filename returns the conventional file name of the artifact within the
// entity package.
func (k Kind) Filename(pkg string) string {
	if k == HandlerSet {
		return pkg + ".go"
	}
	return k.String() + ".go"
}

func (k Kind) templateName() string {
	return k.String() + ".go.tmpl"
}

// RenderOptions are the parameters shared by every template besides the
// entity names.
type RenderOptions struct {
	// APIPrefix is the versioned path prefix, DefaultAPIPrefix if empty.
	APIPrefix string
}

func (o RenderOptions) prefix() string {
	if o.APIPrefix == "" {
		return DefaultAPIPrefix
	}
	return o.APIPrefix
}

// Template renders one artifact kind for one variant.
type Template struct {
	kind  Kind
	model Model
	tmpl  *template.Template
}

// Kind returns the artifact kind the template renders.
func (t Template) Kind() Kind {
	return t.kind
}

// Render produces the source of the artifact for the named entity. It is a
// pure function of its arguments.
func (t Template) Render(n entity.Names, opts RenderOptions) ([]byte, error) {
	if t.tmpl == nil {
		return nil, fmt.Errorf("no template for %s artifact", t.kind)
	}
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, newTemplateData(n, t.model, opts)); err != nil {
		return nil, fmt.Errorf("render %s for %s: %w", t.kind, n.Pascal, err)
	}
	return buf.Bytes(), nil
}

// Set is the four templates of one variant.
type Set struct {
	Model     Model
	templates map[Kind]Template
}

// Select returns the templates for a variant.
func Select(v entity.Variant) (Set, error) {
	m, ok := models[v]
	if !ok {
		return Set{}, fmt.Errorf("%w: %q", ErrUnsupportedVariant, string(v))
	}
	s := Set{
		Model:     m,
		templates: make(map[Kind]Template, len(Kinds)),
	}
	for _, k := range Kinds {
		s.templates[k] = Template{
			kind:  k,
			model: m,
			tmpl:  templates.Lookup(k.templateName()),
		}
	}
	return s, nil
}

// Template returns the template for an artifact kind.
func (s Set) Template(k Kind) Template {
	if t, ok := s.templates[k]; ok {
		return t
	}
	return Template{kind: k, model: s.Model}
}

// Routes returns the ordered route table the RouteTable artifact registers.
func (s Set) Routes(n entity.Names, opts RenderOptions) []Route {
	return routeTable(n, s.Model, opts.prefix())
}

type templateData struct {
	entity.Names
	IDs       Identifiers
	Fields    []Field
	Enum      []string
	Proximity bool
	APIPrefix string
	Routes    []Route
}

func newTemplateData(n entity.Names, m Model, opts RenderOptions) templateData {
	return templateData{
		Names:     n,
		IDs:       IdentifiersFor(n),
		Fields:    m.Fields,
		Enum:      EnumValues,
		Proximity: m.Has(Proximity),
		APIPrefix: opts.prefix(),
		Routes:    routeTable(n, m, opts.prefix()),
	}
}
