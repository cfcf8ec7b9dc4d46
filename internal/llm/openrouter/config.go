// Package openrouter implements llm.VisionClient against the OpenRouter
// chat/completions API, sending rasterized document pages as base64 data
// URLs.
package openrouter

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenRouter client.
type Config struct {
	APIKey   string        // if empty, falls back to env OPEN_ROUTER_API_KEY
	BaseURL  string        // default https://openrouter.ai/api/v1
	Model    string        // default model when the request carries none
	Timeout  time.Duration // http client timeout; vision calls on multi-page payloads are slow
	SiteURL  string        // optional HTTP-Referer attribution header
	SiteName string        // optional X-Title attribution header
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPEN_ROUTER_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "openai/gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	if cfg.SiteURL == "" {
		cfg.SiteURL = "https://medicare-app.com"
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "MediCare Document Parser"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
