// Package gemini is the HTTP client for the Google Generative Language API,
// covering text generation, multimodal generation over uploaded files, and
// the Files API lifecycle (upload, readiness poll, delete).
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client wraps the Generative Language REST endpoints.
type Client struct {
	http   *resty.Client
	config *config.GeminiConfig
	media  *config.MediaConfig
}

// FileRef identifies an uploaded file on the Files API.
type FileRef struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	State    string `json:"state"`
}

// MediaTimeoutError reports that an uploaded file never became ACTIVE within
// the configured polling budget.
type MediaTimeoutError struct {
	Name     string
	Attempts int
	Interval time.Duration
}

func (e *MediaTimeoutError) Error() string {
	return fmt.Sprintf("media %s not ready after %d polls at %s intervals", e.Name, e.Attempts, e.Interval)
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text     string    `json:"text,omitempty"`
	FileData *fileData `json:"file_data,omitempty"`
}

type fileData struct {
	MimeType string `json:"mime_type"`
	FileURI  string `json:"file_uri"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type fileResponse struct {
	File FileRef `json:"file"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewClient creates the API client. The key is attached as a query parameter
// on every request.
func NewClient(geminiCfg *config.GeminiConfig, mediaCfg *config.MediaConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(geminiCfg.Timeout).
		SetQueryParam("key", geminiCfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		config: geminiCfg,
		media:  mediaCfg,
	}
}

// GenerateText sends a text-only prompt to the configured text model.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			MaxOutputTokens: c.config.MaxTokens,
		},
	}
	return c.generate(ctx, c.config.Model, req)
}

// GenerateWithFile sends a prompt together with a previously uploaded file to
// the vision model.
func (c *Client) GenerateWithFile(ctx context.Context, file *FileRef, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{FileData: &fileData{MimeType: file.MimeType, FileURI: file.URI}},
			{Text: prompt},
		}}},
		GenerationConfig: &generationConfig{
			MaxOutputTokens: c.config.MaxTokens,
		},
	}
	return c.generate(ctx, c.config.VisionModel, req)
}

func (c *Client) generate(ctx context.Context, model string, req generateRequest) (string, error) {
	start := time.Now()

	var result generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))

	common.LogAICall(model, time.Since(start), err, "")

	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("model API error %d: %s", result.Error.Code, result.Error.Message)
		}
		return "", fmt.Errorf("model API returned status %d", resp.StatusCode())
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model returned empty content")
	}
	return text, nil
}

// UploadFile uploads a local media file via the simple upload endpoint.
func (c *Client) UploadFile(ctx context.Context, path string) (*FileRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	var result fileResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", detectMimeType(path)).
		SetBody(data).
		SetResult(&result).
		SetQueryParam("uploadType", "media").
		Post("/upload/v1beta/files")
	if err != nil {
		return nil, fmt.Errorf("file upload failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("file upload returned status %d", resp.StatusCode())
	}
	if result.File.Name == "" {
		return nil, fmt.Errorf("file upload returned empty file reference")
	}

	common.LogInfo("media uploaded",
		zap.String("file", result.File.Name),
		zap.String("state", result.File.State),
		zap.Int("bytes", len(data)),
	)
	return &result.File, nil
}

// WaitForFile polls the file until it is ACTIVE. The poll is bounded by
// media.poll_interval and media.max_poll_attempts; exhausting the budget
// returns a MediaTimeoutError.
func (c *Client) WaitForFile(ctx context.Context, file *FileRef) error {
	if file.State == "ACTIVE" {
		return nil
	}

	for attempt := 1; attempt <= c.media.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.media.PollInterval):
		}

		var result FileRef
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&result).
			Get("/v1beta/" + file.Name)
		if err != nil {
			return fmt.Errorf("file status poll failed: %w", err)
		}
		if resp.IsError() {
			return fmt.Errorf("file status poll returned status %d", resp.StatusCode())
		}

		switch result.State {
		case "ACTIVE":
			file.State = result.State
			if result.URI != "" {
				file.URI = result.URI
			}
			common.LogDebug("media ready",
				zap.String("file", file.Name),
				zap.Int("attempts", attempt),
			)
			return nil
		case "FAILED":
			return fmt.Errorf("media processing failed for %s", file.Name)
		}
	}

	return &MediaTimeoutError{
		Name:     file.Name,
		Attempts: c.media.MaxPollAttempts,
		Interval: c.media.PollInterval,
	}
}

// DeleteFile removes an uploaded file. Callers treat failures as best-effort.
func (c *Client) DeleteFile(ctx context.Context, file *FileRef) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/v1beta/" + file.Name)
	if err != nil {
		return fmt.Errorf("file delete failed: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("file delete returned status %d", resp.StatusCode())
	}
	return nil
}

func detectMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "application/octet-stream"
	}
}
