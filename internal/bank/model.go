package bank

import (
	"strings"

	"github.com/kindred-app/crudjen/internal/entity"
)

// Capability is an optional feature layered on top of the generic entity.
type Capability string

// Proximity adds a location field and a radius search over it.
const Proximity Capability = "proximity"

// Field is one entity field present in the create, stored and update shapes.
type Field struct {
	// Name is the Go field name.
	Name string
	// Key is the bson and json key.
	Key string
	// Type is the Go type.
	Type string
	// Validate is the validator tag applied on creation.
	Validate string
}

// EnumValues are the values of the generated Enumeration type.
var EnumValues = []string{"Option1", "Option2", "Option3"}

var (
	genericFields = []Field{
		{Name: "Field1", Key: "field1", Type: "string", Validate: "required"},
		{Name: "Field2", Key: "field2", Type: "Enumeration", Validate: "required,oneof=" + strings.Join(EnumValues, " ")},
	}
	pictureField = Field{Name: "Picture", Key: "picture", Type: "*string", Validate: "required"}

	capabilityFields = map[Capability][]Field{
		Proximity: {
			{Name: "Location", Key: "location", Type: "[]float64", Validate: "required,len=2"},
		},
	}
)

// Model is the declarative description of a variant: the fields every
// artifact agrees on and the capabilities it adds to the plain entity.
type Model struct {
	Variant      entity.Variant
	Fields       []Field
	Capabilities []Capability
}

// Has reports whether the model carries the capability.
func (m Model) Has(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

func newModel(v entity.Variant, caps ...Capability) Model {
	fields := append([]Field(nil), genericFields...)
	for _, c := range caps {
		fields = append(fields, capabilityFields[c]...)
	}
	fields = append(fields, pictureField)
	return Model{
		Variant:      v,
		Fields:       fields,
		Capabilities: caps,
	}
}

var models = map[entity.Variant]Model{
	entity.Plain:      newModel(entity.Plain),
	entity.Geolocated: newModel(entity.Geolocated, Proximity),
}

// Identifiers are the generated type and function names shared across
// artifacts. Handlers call the service methods and routes reference the
// handlers by these exact names.
type Identifiers struct {
	CreateParams   string
	Document       string
	UpdateDocument string
	NearbyParams   string

	ServiceCreate string
	ServiceList   string
	ServiceGet    string
	ServiceUpdate string
	ServiceDelete string
	ServiceNearby string

	HandlerCreate string
	HandlerList   string
	HandlerGet    string
	HandlerUpdate string
	HandlerDelete string
	HandlerNearby string
}

// IdentifiersFor derives every generated identifier from the entity names.
func IdentifiersFor(n entity.Names) Identifiers {
	p := n.Pascal
	return Identifiers{
		CreateParams:   "Create" + p + "Params",
		Document:       p + "Document",
		UpdateDocument: "Update" + p + "Document",
		NearbyParams:   "GetNearby" + p + "sParams",

		ServiceCreate: "Create" + p,
		ServiceList:   "GetAll" + p + "s",
		ServiceGet:    "Get" + p + "ByID",
		ServiceUpdate: "UpdatePartial" + p,
		ServiceDelete: "Delete" + p,
		ServiceNearby: "GetNearby" + p + "s",

		HandlerCreate: "Create" + p,
		HandlerList:   "Get" + p + "s",
		HandlerGet:    "Get" + p,
		HandlerUpdate: "UpdatePartial" + p,
		HandlerDelete: "Delete" + p,
		HandlerNearby: "GetNearby" + p + "s",
	}
}
