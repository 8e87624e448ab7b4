package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// TextTranslator translates a single text between two languages.
type TextTranslator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Client LibreTranslate API client
type Client struct {
	client *resty.Client
	apiKey string
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// NewClient creates a LibreTranslate client
func NewClient(cfg config.TranslationConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		client: client,
		apiKey: cfg.APIKey,
	}
}

// Translate sends text to LibreTranslate. Transport failures, non-2xx responses and
// bodies without a translation are returned as errors.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	start := time.Now()
	translated, err := c.translate(ctx, text, source, target)
	common.LogProviderCall("libretranslate", "translate", time.Since(start), err, common.RequestIDFromContext(ctx))
	return translated, err
}

func (c *Client) translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(translateRequest{
			Q:      text,
			Source: source,
			Target: target,
			Format: "text",
			APIKey: c.apiKey,
		}).
		Post("/translate")
	if err != nil {
		return "", fmt.Errorf("failed to send request to LibreTranslate: %w", err)
	}

	if resp.IsError() {
		message := common.ProviderMessage(resp.Body())
		if message == "" {
			message = resp.Status()
		}
		return "", fmt.Errorf("LibreTranslate returned status %d: %s", resp.StatusCode(), message)
	}

	var result translateResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse LibreTranslate response: %w", err)
	}
	if strings.TrimSpace(result.TranslatedText) == "" {
		return "", fmt.Errorf("empty translation in LibreTranslate response")
	}

	return result.TranslatedText, nil
}
