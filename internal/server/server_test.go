package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/repograph/repograph/internal/enrich"
	"github.com/repograph/repograph/internal/githost"
	"github.com/repograph/repograph/internal/graph"
	"github.com/repograph/repograph/internal/store"
)

// fakeGitHub serves a small fixture repository: two TypeScript files where
// index.ts imports ./utils, plus a README.
func fakeGitHub(t *testing.T, treeCalls *int64) *httptest.Server {
	t.Helper()

	files := map[string]string{
		"src/index.ts": `import { add } from "./utils";` + "\n",
		"src/utils.ts": `export function add(a: number, b: number) { return a + b; }` + "\n",
		"README.md":    "# Fixture\n\nHello.\n",
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/acme/widgets":
			w.Write([]byte(`{"default_branch":"main"}`))

		case r.URL.Path == "/repos/acme/widgets/git/trees/main":
			if treeCalls != nil {
				atomic.AddInt64(treeCalls, 1)
			}
			w.Write([]byte(`{"truncated":false,"tree":[
				{"path":"src/index.ts","type":"blob","size":40},
				{"path":"src/utils.ts","type":"blob","size":60},
				{"path":"README.md","type":"blob","size":20}
			]}`))

		case strings.HasPrefix(r.URL.Path, "/repos/acme/widgets/contents/"):
			path := strings.TrimPrefix(r.URL.Path, "/repos/acme/widgets/contents/")
			content, ok := files[path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"Not Found"}`))
				return
			}
			w.Write([]byte(content))

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
}

func newTestServer(t *testing.T, gh *httptest.Server, cache *store.Store) *Server {
	t.Helper()
	cfg := Config{
		Port:     0,
		CacheTTL: time.Minute,
		Enrich:   enrich.DefaultOptions(),
	}
	return New(cfg, githost.NewClient(gh.URL, ""), cache, nil)
}

func TestGraphEndpoint(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/graph", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Owner string       `json:"owner"`
		Ref   string       `json:"ref"`
		Graph *graph.Graph `json:"graph"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Owner != "acme" || resp.Ref != "main" {
		t.Errorf("owner/ref = %q/%q, want acme/main", resp.Owner, resp.Ref)
	}
	if resp.Graph == nil {
		t.Fatal("missing graph in response")
	}
	if resp.Graph.Node(graph.RootID) == nil {
		t.Error("graph missing root node")
	}
	if resp.Graph.Node("src/index.ts") == nil {
		t.Error("graph missing src/index.ts")
	}

	foundDep := false
	for _, e := range resp.Graph.Edges {
		if e.Kind == graph.EdgeDependency && e.Source == "src/index.ts" && e.Target == "src/utils.ts" {
			foundDep = true
		}
	}
	if !foundDep {
		t.Error("expected dependency edge src/index.ts -> src/utils.ts")
	}
}

func TestGraphEndpointRepoNotFound(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/missing/graph", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGraphEndpointUsesCache(t *testing.T) {
	var treeCalls int64
	gh := fakeGitHub(t, &treeCalls)
	defer gh.Close()

	cache, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer cache.Close()

	srv := newTestServer(t, gh, cache)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/graph", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}

	if n := atomic.LoadInt64(&treeCalls); n != 1 {
		t.Errorf("tree fetched %d times, want 1 (second request should hit cache)", n)
	}
}

func TestModulesEndpoint(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/modules", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Modules []graph.ModuleSummary `json:"modules"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Modules) == 0 {
		t.Fatal("expected at least one module summary")
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	t.Run("missing path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/analysis", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("heuristic analysis", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/analysis?path=src/utils.ts", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}
		var fa struct {
			Path   string `json:"path"`
			Source string `json:"source"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &fa); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if fa.Path != "src/utils.ts" {
			t.Errorf("path = %q, want src/utils.ts", fa.Path)
		}
		if fa.Source != "heuristic" {
			t.Errorf("source = %q, want heuristic", fa.Source)
		}
	})

	t.Run("file not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/analysis?path=nope.ts", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestReadmeEndpoint(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/repos/acme/widgets/readme", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h1") {
		t.Errorf("rendered README missing heading: %s", rec.Body.String())
	}
}

func TestGraphWebSocket(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/repos/acme/widgets/graph/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sawPhase := false
	for {
		var ev struct {
			Type  string `json:"type"`
			Phase string `json:"phase"`
			Error string `json:"error"`
			Graph *struct {
				Graph *graph.Graph `json:"graph"`
			} `json:"graph"`
		}
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		switch ev.Type {
		case "phase":
			sawPhase = true
		case "progress":
			// fine, keep reading
		case "error":
			t.Fatalf("stream error: %s", ev.Error)
		case "graph":
			if !sawPhase {
				t.Error("graph event arrived before any phase event")
			}
			if ev.Graph == nil || ev.Graph.Graph == nil || ev.Graph.Graph.Node(graph.RootID) == nil {
				t.Fatal("final event missing graph payload")
			}
			return
		default:
			t.Fatalf("unexpected event type %q", ev.Type)
		}
	}
}

func TestHealthz(t *testing.T) {
	gh := fakeGitHub(t, nil)
	defer gh.Close()
	srv := newTestServer(t, gh, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
