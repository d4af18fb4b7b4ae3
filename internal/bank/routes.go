package bank

import (
	"net/http"
	"sort"
	"strings"

	"github.com/kindred-app/crudjen/internal/entity"
)

// DefaultAPIPrefix is the versioned prefix every resource is mounted under.
const DefaultAPIPrefix = "/api/v1"

// Route is one entry of a generated route table.
type Route struct {
	// Method is the HTTP method, e.g. "POST".
	Method string
	// Path is relative to the resource group, e.g. "/:id".
	Path string
	// Full is the absolute path, e.g. "/api/v1/jobs/:id".
	Full string
	// Handler is the name of the Handler method serving the route.
	Handler string
}

// FiberMethod returns the name of the fiber.Router method registering the
// route, e.g. "Post".
func (r Route) FiberMethod() string {
	m := strings.ToLower(r.Method)
	return strings.ToUpper(m[:1]) + m[1:]
}

// Parametric reports whether the route path contains a path parameter.
func (r Route) Parametric() bool {
	for _, seg := range strings.Split(r.Path, "/") {
		if strings.HasPrefix(seg, ":") || seg == "*" {
			return true
		}
	}
	return false
}

func (r Route) String() string {
	return r.Method + " " + r.Full
}

// routeTable builds the ordered route table for an entity.
func routeTable(n entity.Names, m Model, prefix string) []Route {
	ids := IdentifiersFor(n)
	base := strings.TrimSuffix(prefix, "/") + "/" + n.Slug

	rs := []Route{
		{Method: http.MethodPost, Path: "/", Handler: ids.HandlerCreate},
		{Method: http.MethodGet, Path: "/", Handler: ids.HandlerList},
		{Method: http.MethodGet, Path: "/:id", Handler: ids.HandlerGet},
		{Method: http.MethodPatch, Path: "/:id", Handler: ids.HandlerUpdate},
		{Method: http.MethodDelete, Path: "/:id", Handler: ids.HandlerDelete},
	}
	if m.Has(Proximity) {
		rs = append(rs, Route{Method: http.MethodPost, Path: "/nearby", Handler: ids.HandlerNearby})
	}

	for i := range rs {
		rs[i].Full = base
		if rs[i].Path != "/" {
			rs[i].Full += rs[i].Path
		}
	}
	orderRoutes(rs)
	return rs
}

// orderRoutes moves every literal route ahead of every parametric route,
// keeping the relative order within each group. Routers that match in
// registration order then never treat a literal segment such as "nearby" as
// an id.
func orderRoutes(rs []Route) {
	sort.SliceStable(rs, func(i, j int) bool {
		return !rs[i].Parametric() && rs[j].Parametric()
	})
}
