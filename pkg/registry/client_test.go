package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neurospin/distmeta/pkg/cache"
)

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q, want application/json", got)
		}
		w.Write([]byte(`{"name": "pyneonat"}`))
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), "test:", time.Hour, map[string]string{"Accept": "application/json"})

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.Name != "pyneonat" {
		t.Errorf("decoded name = %q, want %q", out.Name, "pyneonat")
	}
}

func TestClient_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), "test:", time.Hour, nil)
	var out any
	err := c.Get(context.Background(), srv.URL, &out)
	if !errors.Is(err, cache.ErrNotFound) {
		t.Errorf("err = %v, want cache.ErrNotFound", err)
	}
}

func TestClient_Cached(t *testing.T) {
	backend, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(backend, "test:", time.Hour, nil)

	ctx := context.Background()
	fetches := 0
	fetch := func(v *string) func() error {
		return func() error {
			fetches++
			*v = "fetched"
			return nil
		}
	}

	var first string
	if err := c.Cached(ctx, "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached failed: %v", err)
	}

	var second string
	if err := c.Cached(ctx, "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached failed: %v", err)
	}

	if fetches != 1 {
		t.Errorf("fetches = %d, want 1 (second call should hit cache)", fetches)
	}
	if second != "fetched" {
		t.Errorf("cached value = %q, want %q", second, "fetched")
	}

	var third string
	if err := c.Cached(ctx, "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached with refresh failed: %v", err)
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2 after refresh", fetches)
	}
}

func TestClient_Cached_FetchError(t *testing.T) {
	c := NewClient(cache.NewNullCache(), "test:", time.Hour, nil)

	boom := errors.New("boom")
	var v string
	err := c.Cached(context.Background(), "key", false, &v, func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   bool
		notFound  bool
		retryable bool
	}{
		{http.StatusOK, false, false, false},
		{http.StatusNotFound, true, true, false},
		{http.StatusInternalServerError, true, false, true},
		{http.StatusBadGateway, true, false, true},
		{http.StatusForbidden, true, false, false},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkStatus(%d) = %v, wantErr %v", tt.code, err, tt.wantErr)
			continue
		}
		if err == nil {
			continue
		}
		if got := errors.Is(err, cache.ErrNotFound); got != tt.notFound {
			t.Errorf("checkStatus(%d) notFound = %v, want %v", tt.code, got, tt.notFound)
		}
		if got := cache.IsRetryable(err); got != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
		}
	}
}
