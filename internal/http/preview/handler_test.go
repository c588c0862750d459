package preview_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mockuments/internal/catalog"
	"github.com/MrJamesThe3rd/mockuments/internal/generator"
	previewHandler "github.com/MrJamesThe3rd/mockuments/internal/http/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/region"
	"github.com/MrJamesThe3rd/mockuments/internal/render"
)

type snapshot struct {
	State  string `json:"state"`
	Inputs struct {
		Region   string `json:"region"`
		Category string `json:"category"`
		Type     string `json:"type"`
		Mode     string `json:"mode"`
		PONumber bool   `json:"po_number"`
	} `json:"inputs"`
	Record struct {
		Kind        string `json:"kind"`
		Counterpart string `json:"counterpart"`
		Total       string `json:"total"`
		Tax         string `json:"tax"`
		Display     struct {
			Total string `json:"total"`
		} `json:"display"`
	} `json:"record"`
	Error string `json:"error"`
	Field string `json:"field"`
}

func newServer(t *testing.T) http.Handler {
	t.Helper()

	now := func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	views, err := render.NewViews()
	require.NoError(t, err)

	surface := render.NewSurface(views)
	gen := generator.New(region.Default(), catalog.Default(), generator.WithSeed(5), generator.WithNow(now))

	c, err := preview.New(gen, catalog.Default(), region.Default(), surface, preview.WithNow(now))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/preview", previewHandler.NewHandler(c, surface).Routes)

	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, snapshot) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var s snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s), rec.Body.String())

	return rec.Code, s
}

func TestHandler_Get(t *testing.T) {
	code, s := do(t, newServer(t), http.MethodGet, "/preview/", "")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "previewing", s.State)
	assert.Equal(t, "UK", s.Inputs.Region)
	assert.Equal(t, "COSTS", s.Inputs.Category)
	assert.Equal(t, "RECEIPT", s.Record.Kind)
	assert.True(t, strings.HasPrefix(s.Record.Display.Total, "£"))
}

func TestHandler_Update(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
		wantField  string
	}

	tests := []testCase{
		{name: "Category", body: `{"category":"BANK"}`, wantStatus: http.StatusOK, wantKind: "BANK"},
		{name: "CategoryAndType", body: `{"category":"BANK","type":"ATM Slip"}`, wantStatus: http.StatusOK, wantKind: "ATM"},
		{name: "RegionAndMode", body: `{"region":"US","mode":"manual","po_number":true}`, wantStatus: http.StatusOK, wantKind: "RECEIPT"},
		{name: "UnknownRegion", body: `{"region":"DE"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "VaultManual", body: `{"category":"VAULT","mode":"manual"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "BadMode", body: `{"mode":"sometimes"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "BadJSON", body: `{`, wantStatus: http.StatusBadRequest, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, s := do(t, newServer(t), http.MethodPut, "/preview/", tt.body)

			assert.Equal(t, tt.wantStatus, code)

			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, s.Record.Kind)
			}

			assert.Equal(t, tt.wantField, s.Field)
		})
	}
}

func TestHandler_UpdateManual(t *testing.T) {
	h := newServer(t)

	code, _ := do(t, h, http.MethodPut, "/preview/", `{"mode":"manual","type":"Credit Note"}`)
	require.Equal(t, http.StatusOK, code)

	code, s := do(t, h, http.MethodPatch, "/preview/manual",
		`{"counterpart":"Joe's Coffee","date":"2024-01-10","total":"100.00","auto_tax":true}`)
	require.Equal(t, http.StatusOK, code)

	assert.Equal(t, "CREDIT_NOTE", s.Record.Kind)
	assert.Equal(t, "Joe's Coffee", s.Record.Counterpart)
	assert.Equal(t, "100.00", s.Record.Total)
	assert.Equal(t, "16.67", s.Record.Tax)

	code, s = do(t, h, http.MethodPatch, "/preview/manual",
		`{"counterpart":"Joe's Coffee","date":"2024-01-10","total":"abc","auto_tax":true}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "total", s.Field)
}

func TestHandler_Page(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview/page", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<html")
}
