package bank

import (
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"

	"github.com/kindred-app/crudjen/internal/entity"
)

var (
	jobNames  = entity.Names{Pascal: "Job", Slug: "jobs", Package: "job"}
	spotNames = entity.Names{Pascal: "Spot", Slug: "spots", Package: "spot"}
)

func TestSelect(t *testing.T) {
	is := is.New(t)

	plain, err := Select(entity.Plain)
	is.NoErr(err)
	is.True(!plain.Model.Has(Proximity))

	geo, err := Select(entity.Geolocated)
	is.NoErr(err)
	is.True(geo.Model.Has(Proximity))

	_, err = Select(entity.Variant("timestamped"))
	is.True(errors.Is(err, ErrUnsupportedVariant))
}

func TestModelFields(t *testing.T) {
	names := func(fs []Field) []string {
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = f.Name
		}
		return out
	}

	if diff := cmp.Diff([]string{"Field1", "Field2", "Picture"}, names(models[entity.Plain].Fields)); diff != "" {
		t.Errorf("plain fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Field1", "Field2", "Location", "Picture"}, names(models[entity.Geolocated].Fields)); diff != "" {
		t.Errorf("geolocated fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRouteTable(t *testing.T) {
	plain, _ := Select(entity.Plain)
	got := plain.Routes(jobNames, RenderOptions{})
	want := []Route{
		{Method: "POST", Path: "/", Full: "/api/v1/jobs", Handler: "CreateJob"},
		{Method: "GET", Path: "/", Full: "/api/v1/jobs", Handler: "GetJobs"},
		{Method: "GET", Path: "/:id", Full: "/api/v1/jobs/:id", Handler: "GetJob"},
		{Method: "PATCH", Path: "/:id", Full: "/api/v1/jobs/:id", Handler: "UpdatePartialJob"},
		{Method: "DELETE", Path: "/:id", Full: "/api/v1/jobs/:id", Handler: "DeleteJob"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("plain routes mismatch (-want +got):\n%s", diff)
	}

	geo, _ := Select(entity.Geolocated)
	got = geo.Routes(spotNames, RenderOptions{APIPrefix: "/api/v2"})
	want = []Route{
		{Method: "POST", Path: "/", Full: "/api/v2/spots", Handler: "CreateSpot"},
		{Method: "GET", Path: "/", Full: "/api/v2/spots", Handler: "GetSpots"},
		{Method: "POST", Path: "/nearby", Full: "/api/v2/spots/nearby", Handler: "GetNearbySpots"},
		{Method: "GET", Path: "/:id", Full: "/api/v2/spots/:id", Handler: "GetSpot"},
		{Method: "PATCH", Path: "/:id", Full: "/api/v2/spots/:id", Handler: "UpdatePartialSpot"},
		{Method: "DELETE", Path: "/:id", Full: "/api/v2/spots/:id", Handler: "DeleteSpot"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("geolocated routes mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderRoutesLiteralFirst(t *testing.T) {
	is := is.New(t)

	rs := []Route{
		{Method: "GET", Path: "/:id"},
		{Method: "POST", Path: "/search"},
		{Method: "DELETE", Path: "/:id"},
		{Method: "GET", Path: "/export/*"},
		{Method: "POST", Path: "/"},
	}
	orderRoutes(rs)

	var order []string
	for _, r := range rs {
		order = append(order, r.Method+" "+r.Path)
	}
	is.Equal(strings.Join(order, ", "), "POST /search, POST /, GET /:id, DELETE /:id, GET /export/*")
}

func TestRouteFiberMethod(t *testing.T) {
	is := is.New(t)
	is.Equal(Route{Method: "DELETE"}.FiberMethod(), "Delete")
	is.Equal(Route{Method: "PATCH"}.FiberMethod(), "Patch")
	is.Equal(Route{Method: "GET", Full: "/api/v1/jobs"}.String(), "GET /api/v1/jobs")
}

func TestRenderParses(t *testing.T) {
	for _, v := range entity.Variants {
		set, err := Select(v)
		if err != nil {
			t.Fatal(err)
		}
		for _, k := range Kinds {
			t.Run(string(v)+"/"+k.String(), func(t *testing.T) {
				is := is.New(t)
				src, err := set.Template(k).Render(spotNames, RenderOptions{})
				is.NoErr(err)
				f, err := parser.ParseFile(token.NewFileSet(), k.Filename("spot"), src, parser.ParseComments)
				is.NoErr(err) // rendered source parses
				is.Equal(f.Name.Name, "spot")
			})
		}
	}
}

func TestRenderPlainHasNoProximity(t *testing.T) {
	set, _ := Select(entity.Plain)
	for _, k := range Kinds {
		src, err := set.Template(k).Render(jobNames, RenderOptions{})
		if err != nil {
			t.Fatal(err)
		}
		lower := strings.ToLower(string(src))
		for _, banned := range []string{"location", "nearby", "$near"} {
			if strings.Contains(lower, banned) {
				t.Errorf("plain %s artifact contains %q", k, banned)
			}
		}
	}
}

func TestRenderGeolocated(t *testing.T) {
	is := is.New(t)
	set, _ := Select(entity.Geolocated)

	types, err := set.Template(TypeDefinitions).Render(spotNames, RenderOptions{})
	is.NoErr(err)
	is.True(strings.Contains(string(types), "type GetNearbySpotsParams struct"))
	is.True(strings.Contains(string(types), "`validate:\"required,len=2\" json:\"location\"`"))

	svc, err := set.Template(PersistenceService).Render(spotNames, RenderOptions{})
	is.NoErr(err)
	is.True(strings.Contains(string(svc), "func (s *Service) GetNearbySpots(ctx context.Context, location []float64, radius float64) ([]SpotDocument, error)"))
	is.True(strings.Contains(string(svc), `"$near":        location`))
	is.True(strings.Contains(string(svc), `"$maxDistance": radius`))

	routes, err := set.Template(RouteTable).Render(spotNames, RenderOptions{})
	is.NoErr(err)
	src := string(routes)
	nearby := strings.Index(src, `group.Post("/nearby", handler.GetNearbySpots)`)
	byID := strings.Index(src, `group.Get("/:id", handler.GetSpot)`)
	is.True(nearby > 0)
	is.True(byID > nearby) // nearby is registered before the id route
	is.True(strings.Contains(src, "service.EnsureIndexes(context.Background())"))
}

func TestRenderDeterministic(t *testing.T) {
	is := is.New(t)
	set, _ := Select(entity.Geolocated)
	for _, k := range Kinds {
		a, err := set.Template(k).Render(spotNames, RenderOptions{})
		is.NoErr(err)
		b, err := set.Template(k).Render(spotNames, RenderOptions{})
		is.NoErr(err)
		is.Equal(string(a), string(b))
	}
}

func TestIdentifiersFor(t *testing.T) {
	ids := IdentifiersFor(jobNames)
	want := Identifiers{
		CreateParams:   "CreateJobParams",
		Document:       "JobDocument",
		UpdateDocument: "UpdateJobDocument",
		NearbyParams:   "GetNearbyJobsParams",
		ServiceCreate:  "CreateJob",
		ServiceList:    "GetAllJobs",
		ServiceGet:     "GetJobByID",
		ServiceUpdate:  "UpdatePartialJob",
		ServiceDelete:  "DeleteJob",
		ServiceNearby:  "GetNearbyJobs",
		HandlerCreate:  "CreateJob",
		HandlerList:    "GetJobs",
		HandlerGet:     "GetJob",
		HandlerUpdate:  "UpdatePartialJob",
		HandlerDelete:  "DeleteJob",
		HandlerNearby:  "GetNearbyJobs",
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("IdentifiersFor() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderRegistry(t *testing.T) {
	is := is.New(t)

	src, err := RenderRegistry("example.com/backend/internal/handlers", spotNames, jobNames)
	is.NoErr(err)
	f, err := parser.ParseFile(token.NewFileSet(), RegistryFilename, src, parser.ImportsOnly)
	is.NoErr(err)
	is.Equal(f.Name.Name, "handlers")

	var imports []string
	for _, imp := range f.Imports {
		imports = append(imports, imp.Path.Value)
	}
	want := []string{
		`"github.com/gofiber/fiber/v2"`,
		`"go.mongodb.org/mongo-driver/mongo"`,
		`"example.com/backend/internal/handlers/job"`,
		`"example.com/backend/internal/handlers/spot"`,
	}
	if diff := cmp.Diff(want, imports); diff != "" {
		t.Errorf("registry imports mismatch (-want +got):\n%s", diff)
	}
	is.True(strings.Index(string(src), "jobpkg.Routes(app, collections)") < strings.Index(string(src), "spotpkg.Routes(app, collections)"))

	_, err = RenderRegistry("", jobNames)
	is.True(err != nil)
}
