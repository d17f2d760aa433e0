package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-admin-backend/config"
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/rpupo63/portfolio-admin-backend/services"
	"github.com/rpupo63/portfolio-admin-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	router       *chi.Mux
	db           database.Database
	backend      *testutil.RecordingBackend
	projectType  *models.Type
	technologies []*models.Technology
}

func newAPIFixture(t *testing.T) apiFixture {
	t.Helper()

	d := testutil.InitDatabase(t)
	backend := testutil.NewRecordingBackend()
	router := newRouter(d, backend,
		withServerConfig(config.ServerConfig{AcceptedOrigins: []string{"https://admin.example.test"}, MaxBodyBytes: 2 << 20}),
		withStartupTime(time.Now()),
	)

	return apiFixture{
		router:       router,
		db:           d,
		backend:      backend,
		projectType:  testutil.CreateType(t, d, "web"),
		technologies: testutil.CreateTechnologies(t, d, "go", "vue", "css"),
	}
}

func (f apiFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f apiFixture) form(title string, technologies ...uint) url.Values {
	values := url.Values{
		"title":   {title},
		"url":     {"https://example.test"},
		"content": {"Long enough project content."},
		"type_id": {fmt.Sprint(f.projectType.ID)},
	}
	for _, id := range technologies {
		values.Add("technologies[]", fmt.Sprint(id))
	}
	return values
}

func multipartRequest(t *testing.T, method, target string, values url.Values, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, vals := range values {
		for _, val := range vals {
			require.NoError(t, writer.WriteField(key, val))
		}
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCreateProjectRedirectsToShow(t *testing.T) {
	f := newAPIFixture(t)

	req := multipartRequest(t, http.MethodPost, "/projects", f.form("My Portfolio Site", f.technologies[0].ID, f.technologies[2].ID), testutil.PNG(t))
	rec := f.do(req)

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/projects/1-my-portfolio-site", rec.Header().Get("Location"))
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	project := decode[models.Project](t, rec)
	assert.Equal(t, "1-my-portfolio-site", project.Slug)
	require.NotNil(t, project.Image)
	assert.True(t, f.backend.Has(*project.Image))
	assert.Equal(t, []uint{f.technologies[0].ID, f.technologies[2].ID}, project.TechnologyIDs())

	show := f.do(httptest.NewRequest(http.MethodGet, rec.Header().Get("Location"), nil))
	require.Equal(t, http.StatusOK, show.Code)
	assert.Equal(t, project.ID, decode[models.Project](t, show).ID)
}

func TestCreateProjectValidationResponse(t *testing.T) {
	f := newAPIFixture(t)

	values := f.form("ab")
	values.Del("url")
	rec := f.do(multipartRequest(t, http.MethodPost, "/projects", values, nil))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	response := decode[ErrorResponse](t, rec)
	assert.Equal(t, "error", response.Status)
	assert.Equal(t, "the given data was invalid", response.Error)
	assert.Equal(t, []string{"The title field must be at least 3 characters."}, response.Fields["title"])
	assert.Equal(t, []string{"The url field is required."}, response.Fields["url"])
}

func TestCreateProjectFromJSON(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(jsonRequest(t, http.MethodPost, "/projects", map[string]any{
		"title":        "Json project",
		"url":          "https://example.test",
		"content":      "Submitted as a JSON document.",
		"type_id":      f.projectType.ID,
		"technologies": []uint{f.technologies[1].ID},
		"slug":         "ignored",
		"image":        map[string]any{"filename": "cover.png", "data": testutil.PNG(t)},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	project := decode[models.Project](t, rec)
	assert.Equal(t, "1-json-project", project.Slug)
	assert.Equal(t, []uint{f.technologies[1].ID}, project.TechnologyIDs())
	assert.Len(t, f.backend.Puts, 1)
}

func TestCreateProjectRejectsUnknownMediaType(t *testing.T) {
	f := newAPIFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "text/plain")

	rec := f.do(req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUpdateProject(t *testing.T) {
	f := newAPIFixture(t)

	created := f.do(multipartRequest(t, http.MethodPost, "/projects", f.form("Before", f.technologies[0].ID, f.technologies[1].ID), nil))
	require.Equal(t, http.StatusSeeOther, created.Code)

	t.Run("by slug with a new technology set", func(t *testing.T) {
		rec := f.do(multipartRequest(t, http.MethodPut, "/projects/1-before", f.form("After", f.technologies[1].ID, f.technologies[2].ID), nil))

		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/projects/1-after", rec.Header().Get("Location"))
		assert.Equal(t, []uint{f.technologies[1].ID, f.technologies[2].ID}, decode[models.Project](t, rec).TechnologyIDs())
	})

	t.Run("urlencoded marker clears technologies", func(t *testing.T) {
		values := f.form("After")
		values.Set("technologies_present", "1")
		req := httptest.NewRequest(http.MethodPut, "/projects/1", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := f.do(req)
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Empty(t, decode[models.Project](t, rec).TechnologyIDs())
	})

	t.Run("oversized image", func(t *testing.T) {
		rec := f.do(multipartRequest(t, http.MethodPut, "/projects/1", f.form("After"), testutil.OversizedPNG(t, services.MaxUpdateImageBytes)))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		response := decode[ErrorResponse](t, rec)
		assert.Equal(t, "image", response.Field)
		assert.Equal(t, "The image field must not be greater than 512 kilobytes.", response.Details)
	})

	t.Run("unknown project", func(t *testing.T) {
		rec := f.do(multipartRequest(t, http.MethodPut, "/projects/404", f.form("After"), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTrashLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	for _, title := range []string{"First", "Second"} {
		rec := f.do(multipartRequest(t, http.MethodPost, "/projects", f.form(title, f.technologies[0].ID), testutil.PNG(t)))
		require.Equal(t, http.StatusSeeOther, rec.Code)
	}

	rec := f.do(httptest.NewRequest(http.MethodDelete, "/projects/2-second", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects", rec.Header().Get("Location"))

	active := decode[services.Page](t, f.do(httptest.NewRequest(http.MethodGet, "/projects", nil)))
	assert.EqualValues(t, 1, active.Total)
	assert.Equal(t, services.ActivePageSize, active.PageSize)

	trashed := decode[services.Page](t, f.do(httptest.NewRequest(http.MethodGet, "/projects/trashed?page=1", nil)))
	require.Len(t, trashed.Items, 1)
	assert.Equal(t, "2-second", trashed.Items[0].Slug)
	assert.Equal(t, services.TrashedPageSize, trashed.PageSize)

	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodGet, "/projects/2-second", nil)).Code)
	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodDelete, "/projects/1/obliterate", nil)).Code)

	rec = f.do(httptest.NewRequest(http.MethodPatch, "/projects/2-second/restore", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/projects/2-second", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodPatch, "/projects/2-second/restore", nil)).Code)

	require.Equal(t, http.StatusSeeOther, f.do(httptest.NewRequest(http.MethodDelete, "/projects/2", nil)).Code)
	image := trashed.Items[0].Image
	require.NotNil(t, image)

	rec = f.do(httptest.NewRequest(http.MethodDelete, "/projects/2/obliterate", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{*image}, f.backend.Deletes)

	ids, err := f.db.ProjectTechnologyRepo().TechnologyIDs(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodPatch, "/projects/2/restore", nil)).Code)
}

func TestRegistriesAndOptions(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(jsonRequest(t, http.MethodPost, "/technologies", map[string]string{"name": "svelte"}))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "svelte", decode[models.Technology](t, rec).Name)

	req := httptest.NewRequest(http.MethodPost, "/types", strings.NewReader(url.Values{"name": {"mobile"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = f.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(jsonRequest(t, http.MethodPost, "/types", map[string]string{"name": ""}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	technologies := decode[[]models.Technology](t, f.do(httptest.NewRequest(http.MethodGet, "/technologies", nil)))
	assert.Len(t, technologies, 4)

	options := decode[services.FormOptions](t, f.do(httptest.NewRequest(http.MethodGet, "/projects/options", nil)))
	assert.Len(t, options.Types, 2)
	assert.Len(t, options.Technologies, 4)
}

func TestHealthAndCORS(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Database)

	preflight := httptest.NewRequest(http.MethodOptions, "/projects", nil)
	preflight.Header.Set("Origin", "https://evil.example.test")
	preflight.Header.Set("Access-Control-Request-Method", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, f.do(preflight).Code)

	allowed := httptest.NewRequest(http.MethodGet, "/projects", nil)
	allowed.Header.Set("Origin", "https://admin.example.test")
	rec = f.do(allowed)
	assert.Equal(t, "https://admin.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
