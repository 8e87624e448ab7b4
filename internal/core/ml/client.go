package ml

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Upload image file forwarded for classification
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Client image classification service client
type Client struct {
	client *resty.Client
}

type predictResponse struct {
	Ingredients []string `json:"ingredients"`
}

// NewClient creates an ML service client
func NewClient(cfg config.MLConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		client: client,
	}
}

// PredictIngredients forwards the upload as the multipart field "file" and returns
// the detected ingredients, or an empty list when the service reports none.
func (c *Client) PredictIngredients(ctx context.Context, upload Upload) ([]string, error) {
	start := time.Now()
	ingredients, err := c.predict(ctx, upload)
	common.LogProviderCall("ml", "predict-image", time.Since(start), err, common.RequestIDFromContext(ctx))
	if err != nil {
		return nil, common.NewError(common.ErrCodeUpstream, "Failed to process image", http.StatusInternalServerError, err)
	}

	common.LogInfo("Image classified",
		zap.String("filename", upload.Filename),
		zap.Int("ingredients", len(ingredients)),
	)
	return ingredients, nil
}

func (c *Client) predict(ctx context.Context, upload Upload) ([]string, error) {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetMultipartField("file", upload.Filename, contentType, bytes.NewReader(upload.Data)).
		Post("/predict-image")
	if err != nil {
		return nil, fmt.Errorf("failed to send image to ML service: %w", err)
	}

	if resp.IsError() {
		message := common.ProviderMessage(resp.Body())
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("ML service returned status %d: %s", resp.StatusCode(), message)
	}

	var result predictResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse ML service response: %w", err)
	}
	if result.Ingredients == nil {
		return []string{}, nil
	}
	return result.Ingredients, nil
}
