package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlegate/oscalcat/pkg/catalog"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(&catalog.Catalog{
		Metadata: catalog.Metadata{Title: "Served Catalog"},
		Groups: []catalog.Group{
			{
				ID:    "ac",
				Title: "Access Control",
				Controls: []catalog.Control{
					{
						ID:    "ac-1",
						Title: "Policy and Procedures",
						Props: []catalog.Property{{Name: "implementation-status", Value: "implemented"}},
						Parts: []catalog.Part{{Name: "statement", Prose: "Develop the policy."}},
					},
				},
			},
		},
	})
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex_ServesHTML(t *testing.T) {
	rec := get(t, testServer(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Served Catalog")
	assert.Contains(t, rec.Body.String(), "Policy and Procedures (ac-1)")
}

func TestControl_Found(t *testing.T) {
	rec := get(t, testServer(t), "/api/controls/ac-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		ID     string `json:"ID"`
		Title  string `json:"Title"`
		Status string `json:"Status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "ac-1", view.ID)
	assert.Equal(t, "Policy and Procedures", view.Title)
	assert.Equal(t, "implemented", view.Status)
}

func TestControl_NotFound(t *testing.T) {
	rec := get(t, testServer(t), "/api/controls/zz-99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "control not found")
}

func TestSummary(t *testing.T) {
	rec := get(t, testServer(t), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "Served Catalog", summary["title"])
	assert.EqualValues(t, 1, summary["total"])
	assert.EqualValues(t, 1, summary["implemented"])
}

func TestIndex_Idempotent(t *testing.T) {
	s := testServer(t)
	first := get(t, s, "/").Body.String()
	second := get(t, s, "/").Body.String()
	if !strings.HasPrefix(first, "<!DOCTYPE html>") {
		t.Errorf("unexpected document start: %q", first[:40])
	}
	assert.Equal(t, first, second)
}
