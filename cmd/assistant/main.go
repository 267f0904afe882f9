// In file: cmd/assistant/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voice-gateway/internal/asr"
	"voice-gateway/internal/llm"
	"voice-gateway/internal/router"
	"voice-gateway/internal/tools"
	"voice-gateway/internal/tts"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Voice Gateway | Build: %s", buildInfo.Summary())

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
		}
		log.Println("✅ Reply cache connected.")
	} else {
		log.Println("ℹ️ REDIS_ADDR not set; reply cache disabled.")
	}

	registry := initializeToolRegistry(cfg)
	assistantRouter := router.New(registry, cfg.RouterRules)

	systemPrompt, err := llm.BuildFunctionCallingPrompt(registry.Specs())
	if err != nil {
		log.Fatalf("❌ FATAL: Could not build system prompt: %v", err)
	}
	conv := llm.NewConversationManager(systemPrompt)

	llmClient, err := initializeLLMClient(cfg, systemPrompt)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	asrClient, err := asr.NewClient(cfg.ASRServiceURL)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	ttsClient, err := tts.NewClient(cfg.TTSServiceURL)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	handler := NewAssistantHandler(asrClient, ttsClient, llmClient, conv, assistantRouter, rdb, buildInfo)
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	engine.GET("/health", handler.HandleHealth)
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/chat", handler.HandleChat)
		v1.POST("/chat/debug", handler.HandleChatDebug)
		v1.POST("/chat/text", handler.HandleChatText)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeToolRegistry creates and registers all available tools.
func initializeToolRegistry(cfg *AppConfig) *tools.Registry {
	registry := tools.NewRegistry()
	registry.Register(tools.NewCalculatorTool())
	registry.Register(tools.NewWeatherTool(cfg.DefaultLocation))
	registry.Register(tools.NewArxivTool())
	log.Printf("✅ Tool registry initialized with %d tools.", registry.Count())
	return registry
}

// initializeLLMClient creates the configured language-model client. The
// system prompt is fixed for the process lifetime, so providers that hold it
// on the model (Gemini) receive it here rather than per request.
func initializeLLMClient(cfg *AppConfig, systemPrompt string) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel)
	case "gemini":
		return llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.LLMModel, systemPrompt)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (expected \"openai\" or \"gemini\")", cfg.LLMProvider)
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Assistant is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
