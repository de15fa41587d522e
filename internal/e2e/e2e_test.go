package e2e

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aiengine/internal/prompt"
	"aiengine/internal/sysmem"
	"aiengine/pkg/types"
)

func TestE2E_Root(t *testing.T) {
	llama, _ := newFakeLlama(t, "")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	resp, body := httpGet(t, srv.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var root types.RootResponse
	require.NoError(t, json.Unmarshal(body, &root))
	assert.Equal(t, "Gopang AI Engine v0.3.2", root.Message)
}

func TestE2E_InferenceForwardsRenderedPrompt(t *testing.T) {
	llama, fl := newFakeLlama(t, "  안녕하세요  \n")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"message":"hello","max_tokens":10}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out types.ChatResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "안녕하세요", out.Response)
	assert.GreaterOrEqual(t, out.ProcessingTime, 0.0)

	p := fl.lastPayload(t)
	want := "[|system|]" + prompt.DefaultSystemPrompt + "[|endofturn|]\n[|user|]hello[|endofturn|]\n[|assistant|]"
	assert.Equal(t, want, p["prompt"])
	assert.EqualValues(t, 10, p["n_predict"])
	assert.EqualValues(t, 0.7, p["temperature"])
	assert.Equal(t, []any{"[|endofturn|]", "[|user|]"}, p["stop"])
}

func TestE2E_InferenceDefaultsAndCustomSystem(t *testing.T) {
	llama, fl := newFakeLlama(t, "ok")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"message":"m","system_prompt":"S"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	p := fl.lastPayload(t)
	assert.Equal(t, "[|system|]S[|endofturn|]\n[|user|]m[|endofturn|]\n[|assistant|]", p["prompt"])
	assert.EqualValues(t, 150, p["n_predict"])
}

func TestE2E_InferenceUnlimitedMaxTokens(t *testing.T) {
	llama, fl := newFakeLlama(t, "ok")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"message":"m","max_tokens":-1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.EqualValues(t, -1, fl.lastPayload(t)["n_predict"])
}

func TestE2E_InferenceMissingMessage422(t *testing.T) {
	llama, fl := newFakeLlama(t, "ok")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"max_tokens":5}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))
	fl.mu.Lock()
	defer fl.mu.Unlock()
	assert.Empty(t, fl.payloads, "backend must not be called for invalid input")
}

func TestE2E_InferenceBackendUnreachable500(t *testing.T) {
	srv := newFacade(t, serverOpts{backendURL: closedURL(t)})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var e types.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.NotEmpty(t, e.Detail)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
}

func TestE2E_InferenceTimeout504(t *testing.T) {
	llama, fl := newFakeLlama(t, "late")
	fl.delay = 2 * time.Second
	srv := newFacade(t, serverOpts{backendURL: llama.URL, inferTimeout: 100 * time.Millisecond})

	resp, body := httpPostJSON(t, srv.URL+"/inference", `{"message":"slow"}`)
	require.Equal(t, http.StatusGatewayTimeout, resp.StatusCode, string(body))
	var e types.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "추론 시간 초과", e.Detail)
}

func TestE2E_HealthReady(t *testing.T) {
	llama, _ := newFakeLlama(t, "")
	srv := newFacade(t, serverOpts{backendURL: llama.URL, modelPath: tempModel(t)})

	resp, body := httpGet(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var h types.HealthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, "running", h.LlamaServerStatus)
	assert.True(t, h.ModelLoaded)
	assert.Equal(t, "gopang-exaone-finetuned-Q4_K_M", h.ModelName)
	assert.Equal(t, map[string]int{"ram_used_mb": 2048, "ram_available_mb": 6144}, h.MemoryInfo)
}

func TestE2E_HealthBackendNotReady(t *testing.T) {
	llama, fl := newFakeLlama(t, "")
	fl.healthStatus = http.StatusServiceUnavailable
	srv := newFacade(t, serverOpts{backendURL: llama.URL})

	_, body := httpGet(t, srv.URL+"/health")
	var h types.HealthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "llama_not_ready", h.Status)
	assert.Equal(t, "not_running", h.LlamaServerStatus)
}

func TestE2E_HealthDegradedStill200(t *testing.T) {
	mem := staticMemory{res: sysmem.Result{Err: errors.New("free: not found")}}
	srv := newFacade(t, serverOpts{backendURL: closedURL(t), modelPath: "/nonexistent/model.gguf", memory: mem})

	resp, body := httpGet(t, srv.URL+"/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var h types.HealthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "llama_not_ready", h.Status)
	assert.Equal(t, "not_running", h.LlamaServerStatus)
	assert.False(t, h.ModelLoaded)
	assert.Empty(t, h.MemoryInfo)
	assert.True(t, strings.Contains(string(body), `"memory_info":{}`), string(body))
}

func TestE2E_MetricsExposed(t *testing.T) {
	llama, _ := newFakeLlama(t, "ok")
	srv := newFacade(t, serverOpts{backendURL: llama.URL})
	httpPostJSON(t, srv.URL+"/inference", `{"message":"x"}`)

	resp, body := httpGet(t, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "aiengine_backend_requests_total")
	assert.Contains(t, string(body), `aiengine_inference_requests_total{outcome="ok"}`)
}
