package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"aiengine/internal/backend"
	"aiengine/internal/engine"
	"aiengine/internal/httpapi"
	"aiengine/internal/sysmem"
)

// fakeLlama mimics the llama.cpp server's /health and /completion routes.
type fakeLlama struct {
	mu       sync.Mutex
	payloads []map[string]any

	healthStatus int
	content      string
	delay        time.Duration
}

func newFakeLlama(t *testing.T, content string) (*httptest.Server, *fakeLlama) {
	t.Helper()
	fl := &fakeLlama{healthStatus: http.StatusOK, content: content}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(fl.healthStatus)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/completion", func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		fl.mu.Lock()
		fl.payloads = append(fl.payloads, p)
		fl.mu.Unlock()
		if fl.delay > 0 {
			select {
			case <-time.After(fl.delay):
			case <-r.Context().Done():
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"content": fl.content, "stop": true})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, fl
}

func (f *fakeLlama) lastPayload(t *testing.T) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.payloads) == 0 {
		t.Fatalf("llama server received no completion request")
	}
	return f.payloads[len(f.payloads)-1]
}

type staticMemory struct{ res sysmem.Result }

func (m staticMemory) Snapshot(context.Context) sysmem.Result { return m.res }

// closedURL returns a base URL on which nothing is listening.
func closedURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return "http://" + addr
}

// tempModel creates an empty model file and returns its path.
func tempModel(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "gopang-exaone-finetuned-Q4_K_M.gguf")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write temp model: %v", err)
	}
	return p
}

type serverOpts struct {
	backendURL   string
	modelPath    string
	memory       sysmem.Probe
	inferTimeout time.Duration
}

// newFacade starts the full HTTP stack against the given llama server.
func newFacade(t *testing.T, o serverOpts) *httptest.Server {
	t.Helper()
	if o.memory == nil {
		o.memory = staticMemory{res: sysmem.Result{Info: &sysmem.Info{UsedMB: 2048, AvailableMB: 6144}}}
	}
	be := backend.New(backend.Config{
		BaseURL:           o.backendURL,
		HealthTimeout:     time.Second,
		CompletionTimeout: o.inferTimeout,
	})
	eng := engine.New(engine.Config{
		ModelPath: o.modelPath,
		ModelName: "gopang-exaone-finetuned-Q4_K_M",
	}, be, o.memory, zerolog.Nop())
	srv := httptest.NewServer(httpapi.NewMux(eng))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}
