// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds a full server from environment config and restores env afterwards

package e2e

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/engestimate/estimator/backend/cache"
	"github.com/engestimate/estimator/backend/config"
	"github.com/engestimate/estimator/backend/handlers"
	"github.com/engestimate/estimator/backend/store"
)

// withTestEnv sets the given variables, returning a cleanup function that
// restores the original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, vars map[string]string) func() {
	t.Helper()

	originals := make(map[string]*string, len(vars))
	for key := range vars {
		if v, ok := os.LookupEnv(key); ok {
			originals[key] = &v
		} else {
			originals[key] = nil
		}
	}
	for key, value := range vars {
		os.Setenv(key, value)
	}

	return func() {
		for key, value := range originals {
			if value == nil {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, *value)
			}
		}
	}
}

// newTestServer loads config from the environment and starts the full
// router, store, and cache behind an httptest.Server.
func newTestServer(t *testing.T, env map[string]string) *httptest.Server {
	t.Helper()
	t.Cleanup(withTestEnv(t, env))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(context.Background(), cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	c := cache.New(time.Duration(cfg.CacheTTL)*time.Second, cfg.CacheSize)
	h := handlers.NewHandler(cfg, c, st)

	server := httptest.NewServer(h.NewRouter())
	t.Cleanup(server.Close)
	return server
}

// doJSON sends body to the server and decodes the JSON response into out.
func doJSON(t *testing.T, server *httptest.Server, method, path, body string, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return doRequest(t, server.Client(), req, out)
}

// doRequest sends req and decodes a JSON body into out unless out is nil.
func doRequest(t *testing.T, client *http.Client, req *http.Request, out any) *http.Response {
	t.Helper()

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", req.Method, req.URL.Path, err)
		}
	}
	return resp
}
