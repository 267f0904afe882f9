// In file: internal/api/types.go

// Package api defines the request/response DTOs of the HTTP surface. Keeping
// them separate from the internal types lets the wire format evolve without
// touching the pipeline.
package api

// TextRequest is the body of POST /api/v1/chat/text.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// TextResponse is the reply for a text-only exchange.
type TextResponse struct {
	Reply string `json:"reply"`
	// Routed reports whether a tool produced the reply (as opposed to the
	// model's own text).
	Routed bool `json:"routed"`
	// CacheStatus is "HIT", "MISS", or "OFF" when no cache is configured.
	CacheStatus string `json:"cache_status,omitempty"`
	LatencyMS   int64  `json:"latency_ms"`
}

// DebugResponse is the reply of POST /api/v1/chat/debug: the full trace of
// one exchange, for test logs and troubleshooting.
type DebugResponse struct {
	RequestText string `json:"request_text"`
	LLMRaw      string `json:"llm_raw"`
	FinalText   string `json:"final_text"`
	Routed      bool   `json:"routed"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
