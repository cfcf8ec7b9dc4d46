package openrouter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vibhandikyash/MediCare-BE/internal/llm"
)

// Complete implements llm.VisionClient. Pages are attached as PNG data URLs
// in page order; the response is the raw assistant text with no structural
// guarantee.
func (c *Client) Complete(ctx context.Context, req llm.VisionRequest) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	c.logger.Info("llm.vision.start",
		"req_id", rid,
		"model", model,
		"pages", len(req.Pages),
		"prompt_len", len(req.Prompt),
	)

	content := []map[string]any{
		{"type": "text", "text": req.Prompt + "\n\nAnalyze the following document images:"},
	}
	for _, page := range req.Pages {
		dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(page)
		content = append(content, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": dataURL},
		})
	}

	body := map[string]any{
		"model": model,
		"messages": []map[string]any{
			{"role": "system", "content": "You are a medical document parser."},
			{"role": "user", "content": content},
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + strings.TrimSpace(c.cfg.APIKey),
		"HTTP-Referer":  c.cfg.SiteURL,
		"X-Title":       c.cfg.SiteName,
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, _, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("llm.vision.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openrouter request: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.vision.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("decode openrouter response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.vision.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openrouter response")
	}

	text := strings.TrimSpace(cc.Choices[0].Message.Content)
	c.logger.Info("llm.vision.ok",
		"req_id", rid,
		"chars", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
