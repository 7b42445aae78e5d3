package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/render"
	"github.com/neurospin/distmeta/pkg/store"
)

func sample() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		Name:        "pyneonat",
		Version:     descriptor.Version{Major: 0, Minor: 0, Micro: 1},
		Summary:     "Neonatal brain image processing tools.\n",
		URL:         "https://github.com/neurospin/pyneonat",
		License:     "CeCILL-B",
		Classifiers: []string{"Programming Language :: Python"},
		Requires:    []string{"numpy>=1.11.0", "pandas>=0.19.2"},
		ExtraRequires: map[string][]string{
			"plotting": {"matplotlib>=2.0"},
		},
	}
}

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return New(st, nil), st
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Header().Get("X-Request-Id"); got == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestServer_RequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "client-id-1")
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "client-id-1" {
		t.Errorf("X-Request-Id = %q, want client id echoed back", got)
	}
}

func TestServer_ListEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/packages", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string][]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["packages"] == nil || len(body["packages"]) != 0 {
		t.Errorf("packages = %v, want empty array", body["packages"])
	}
}

func TestServer_PutThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(sample()); err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/packages", &buf))

	if rr.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var rec store.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("invalid record JSON: %v", err)
	}
	if rec.Revision == "" {
		t.Error("record has no revision")
	}

	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/packages/pyneonat", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rr.Code)
	}
	var got store.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Descriptor.Name != "pyneonat" {
		t.Errorf("stored name = %q", got.Descriptor.Name)
	}
}

func TestServer_PutInvalidJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/packages", strings.NewReader("{not json")))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestServer_PutInvalidDescriptor(t *testing.T) {
	srv, _ := newTestServer(t)

	d := sample()
	d.Version.Major = -1
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(d); err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/packages", &buf))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422: %s", rr.Code, rr.Body.String())
	}
	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code == "" {
		t.Error("error response has no code")
	}
}

func TestServer_GetMissing(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/packages/absent", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestServer_PyPIJSON(t *testing.T) {
	srv, st := newTestServer(t)
	if _, err := st.Put(context.Background(), sample()); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pypi/pyneonat/json", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var doc render.Document
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Info.Name != "pyneonat" {
		t.Errorf("info.name = %q", doc.Info.Name)
	}
	if doc.Info.Version != "0.0.1" {
		t.Errorf("info.version = %q, want 0.0.1", doc.Info.Version)
	}
	found := false
	for _, req := range doc.Info.RequiresDist {
		if strings.Contains(req, `extra == "plotting"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("requires_dist missing extra marker: %v", doc.Info.RequiresDist)
	}
}

func TestServer_Delete(t *testing.T) {
	srv, st := newTestServer(t)
	if _, err := st.Put(context.Background(), sample()); err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/packages/pyneonat", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/packages/pyneonat", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rr.Code)
	}
}
