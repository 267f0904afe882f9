// In file: cmd/assistant/handler.go
package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"voice-gateway/internal/api"
	"voice-gateway/internal/asr"
	"voice-gateway/internal/llm"
	"voice-gateway/internal/router"
	"voice-gateway/internal/tts"
	cacheversion "voice-gateway/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// clarificationPrompt is spoken whenever every stage yields an empty or
// whitespace-only reply; the assistant never answers with silence.
const clarificationPrompt = "I didn't catch that. Could you please repeat?"

const replyCacheTTL = 10 * time.Minute

// AssistantHandler wires one request through the full pipeline:
// transcribe → generate → route → synthesize. Each stage runs synchronously;
// concurrency comes from the transport serving each request on its own
// goroutine, so a slow weather API only ever blocks its own request.
type AssistantHandler struct {
	asrClient *asr.Client
	ttsClient *tts.Client
	llmClient llm.Client
	conv      *llm.ConversationManager
	router    *router.Router
	rdb       *redis.Client // nil when no reply cache is configured
	build     BuildInfo
}

func NewAssistantHandler(asrClient *asr.Client, ttsClient *tts.Client, llmClient llm.Client, conv *llm.ConversationManager, rt *router.Router, rdb *redis.Client, build BuildInfo) *AssistantHandler {
	return &AssistantHandler{
		asrClient: asrClient,
		ttsClient: ttsClient,
		llmClient: llmClient,
		conv:      conv,
		router:    rt,
		rdb:       rdb,
		build:     build,
	}
}

// HandleHealth is the liveness probe. It also reports the binary's build
// metadata so a running deployment can be identified from the outside.
func (h *AssistantHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "build": h.build})
}

// HandleChat accepts an uploaded audio file and replies with audio/wav.
func (h *AssistantHandler) HandleChat(c *gin.Context) {
	userText, ok := h.transcribeUpload(c)
	if !ok {
		return // an error response has already been sent
	}

	reply, _, err := h.respond(c.Request.Context(), userText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	audio, err := h.ttsClient.Synthesize(c.Request.Context(), reply)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	log.Printf("🔊 Reply synthesized (%d bytes).", len(audio))
	c.Header("Content-Disposition", `attachment; filename="reply.wav"`)
	c.Data(http.StatusOK, "audio/wav", audio)
}

// HandleChatDebug runs the same pipeline but returns the full text trace as
// JSON instead of synthesized audio. Useful for test logs.
func (h *AssistantHandler) HandleChatDebug(c *gin.Context) {
	userText, ok := h.transcribeUpload(c)
	if !ok {
		return
	}

	reply, trace, err := h.respond(c.Request.Context(), userText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.DebugResponse{
		RequestText: userText,
		LLMRaw:      trace.llmRaw,
		FinalText:   reply,
		Routed:      trace.routed,
	})
}

// HandleChatText is the text-only entry point: the same pipeline minus ASR
// and TTS.
func (h *AssistantHandler) HandleChatText(c *gin.Context) {
	startTime := time.Now()
	var req api.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	cacheStatus := "OFF"
	var cacheKey string
	if h.rdb != nil {
		cacheKey = cacheversion.GenerateVersionedCacheKey("reply", req.Text)
		if cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			log.Println("✅ Reply cache HIT")
			c.JSON(http.StatusOK, api.TextResponse{
				Reply:       cached,
				CacheStatus: "HIT",
				LatencyMS:   time.Since(startTime).Milliseconds(),
			})
			return
		}
		cacheStatus = "MISS"
	}

	reply, trace, err := h.respond(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Set(c.Request.Context(), cacheKey, reply, replyCacheTTL).Err(); err != nil {
			log.Printf("WARNING: Failed to cache reply: %v", err)
		}
	}

	c.JSON(http.StatusOK, api.TextResponse{
		Reply:       reply,
		Routed:      trace.routed,
		CacheStatus: cacheStatus,
		LatencyMS:   time.Since(startTime).Milliseconds(),
	})
}

// responseTrace carries the intermediate products of one exchange for the
// debug endpoint.
type responseTrace struct {
	llmRaw string
	routed bool
}

// respond runs generate → route for one utterance and records the exchange.
//
// Routing order: a tool call parsed from the model output wins; otherwise the
// rule fallback inspects the original utterance; otherwise the model's own
// text is the reply. A blank result at the end becomes the clarification
// prompt rather than nothing.
func (h *AssistantHandler) respond(ctx context.Context, userText string) (string, responseTrace, error) {
	llmRaw, err := h.llmClient.Generate(ctx, h.conv.Messages(userText))
	if err != nil {
		return "", responseTrace{}, err
	}
	log.Printf("🧠 LLM raw output: %.80q", llmRaw)

	reply, routed := h.router.Route(ctx, llmRaw, userText)
	if !routed {
		reply = llmRaw
	}
	if strings.TrimSpace(reply) == "" {
		log.Println("⚠️ Empty reply after routing; using clarification prompt.")
		reply = clarificationPrompt
	}
	log.Printf("💬 Final reply: %.80q", reply)

	h.conv.Record(userText, reply)
	return reply, responseTrace{llmRaw: llmRaw, routed: routed}, nil
}

// transcribeUpload reads the uploaded audio file and turns it into text,
// sending the error response itself on failure.
func (h *AssistantHandler) transcribeUpload(c *gin.Context) (string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing audio file upload: " + err.Error()})
		return "", false
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Could not open audio upload: " + err.Error()})
		return "", false
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Could not read audio upload: " + err.Error()})
		return "", false
	}

	userText, err := h.asrClient.Transcribe(c.Request.Context(), audio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return "", false
	}
	log.Printf("🎤 User said: %q", userText)
	return userText, true
}
