package types

// ChatRequest is the body accepted by POST /inference.
type ChatRequest struct {
	// Required user message placed in the user turn of the prompt.
	// example: 주민등록등본 발급 방법을 알려줘
	Message *string `json:"message" example:"주민등록등본 발급 방법을 알려줘"`
	// Optional system instructions. When empty the server default is used.
	SystemPrompt *string `json:"system_prompt,omitempty"`
	// Maximum number of tokens the backend may generate.
	// example: 150
	MaxTokens *int `json:"max_tokens,omitempty" example:"150"`
}

// ChatResponse is returned by POST /inference on success.
type ChatResponse struct {
	// Completion text with surrounding whitespace removed.
	Response string `json:"response"`
	// Wall-clock seconds spent serving the request.
	// example: 3.21
	ProcessingTime float64 `json:"processing_time" example:"3.21"`
}

// HealthResponse is returned by GET /health. It is always served with 200.
type HealthResponse struct {
	// "ok" when the backend answered its health check with 200, else "llama_not_ready".
	// example: ok
	Status string `json:"status" example:"ok"`
	// Whether the configured model file exists on disk.
	ModelLoaded bool `json:"model_loaded"`
	// example: gopang-exaone-finetuned-Q4_K_M
	ModelName string `json:"model_name" example:"gopang-exaone-finetuned-Q4_K_M"`
	// "running" or "not_running".
	// example: running
	LlamaServerStatus string `json:"llama_server_status" example:"running"`
	// Empty object when the memory probe failed.
	MemoryInfo map[string]int `json:"memory_info"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	// example: Gopang AI Engine v0.3.2
	Message string `json:"message" example:"Gopang AI Engine v0.3.2"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error description.
	// example: message is required
	Detail string `json:"detail" example:"message is required"`
	// HTTP status code.
	// example: 422
	Code int `json:"code" example:"422"`
}
