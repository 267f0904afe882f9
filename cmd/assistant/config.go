// In file: cmd/assistant/config.go
package main

import (
	"fmt"
	"log"
	"os"

	"voice-gateway/internal/router"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds all configuration for the assistant, loaded from the
// environment and the optional config.yaml rule overlay.
type AppConfig struct {
	Port            string
	RedisAddr       string
	DefaultLocation string

	ASRServiceURL string
	TTSServiceURL string

	LLMProvider   string // "openai" or "gemini"
	LLMModel      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	GeminiAPIKey  string

	RouterRules router.Rules
}

// LoadConfig loads configuration from a .env file, environment variables, and
// the optional config.yaml.
func LoadConfig() (*AppConfig, error) {
	// Only attempt to load a .env file in local development. In containers
	// (where GIN_MODE="release") configuration is provided directly as
	// environment variables.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("WARNING: No .env file found for local development.")
		}
	}

	cfg := &AppConfig{
		Port:            envOr("PORT", "8000"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		DefaultLocation: envOr("DEFAULT_LOCATION", "Toronto, ON"),
		ASRServiceURL:   os.Getenv("ASR_SERVICE_URL"),
		TTSServiceURL:   os.Getenv("TTS_SERVICE_URL"),
		LLMProvider:     envOr("LLM_PROVIDER", "openai"),
		LLMModel:        envOr("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
	}

	if cfg.ASRServiceURL == "" {
		return nil, fmt.Errorf("ASR_SERVICE_URL environment variable is not set")
	}
	if cfg.TTSServiceURL == "" {
		return nil, fmt.Errorf("TTS_SERVICE_URL environment variable is not set")
	}

	// The router's alias table and keyword lists ship with sane defaults;
	// config.yaml can overlay them without a rebuild.
	cfg.RouterRules = router.DefaultRules()
	if data, err := os.ReadFile("config.yaml"); err == nil {
		var overlay router.Rules
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return nil, fmt.Errorf("failed to parse config.yaml: %w", err)
		}
		cfg.RouterRules = cfg.RouterRules.Merge(overlay)
		log.Println("✅ Router rule overlay loaded from config.yaml.")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
