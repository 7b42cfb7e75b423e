package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clipscribe/internal/config"
	"clipscribe/internal/services"
)

// Cloud transcribes audio through the provider's speech-to-text endpoint,
// requesting the segmented (verbose) response shape.
type Cloud struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewCloud creates the cloud engine from configuration.
func NewCloud(cfg config.Cloud) *Cloud {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &Cloud{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient overrides the default HTTP client (for testing).
func (c *Cloud) WithHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// Configured reports whether credentials are present.
func (c *Cloud) Configured() bool {
	return c != nil && strings.TrimSpace(c.apiKey) != ""
}

// Name identifies the engine in events and logs.
func (c *Cloud) Name() string { return "cloud" }

// Model returns the fixed provider model identifier.
func (c *Cloud) Model() string { return c.model }

// Transcribe uploads the audio bytes and coerces the provider response into
// the uniform segment shape. A response without a segment breakdown is
// synthesized into a single whole-text segment.
func (c *Cloud) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	if !c.Configured() {
		return nil, services.Wrap(services.ErrConfiguration, "cloud", "transcribe", "api key not configured", nil)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("cloud transcribe: open audio: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("cloud transcribe: encode form: %w", err)
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("cloud transcribe: encode form: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("cloud transcribe: encode form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("cloud transcribe: read audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("cloud transcribe: encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("cloud transcribe: new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "cloud", "transcribe", "request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "cloud", "transcribe", "read response", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, services.Wrap(services.ErrExternalTool, "cloud", "transcribe",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))), nil)
	}

	raw, text, err := decodePayload(payload)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "cloud", "transcribe", "parse response", err)
	}
	segments := coerceSegments(raw, text)
	if segments == nil {
		return nil, services.Wrap(services.ErrMalformedOutput, "cloud", "transcribe", "response carried no segments or text", nil)
	}
	return segments, nil
}
