// Package ollama is a client for a local Ollama-compatible
// text-generation endpoint. One blocking request, one completion; no
// streaming, no retries.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://127.0.0.1:11434"
	generatePath  = "/api/generate"
	defaultModel  = "llama3.2:1b"

	// Fixed sampling parameters, not user-configurable.
	temperature = 0.8
	topP        = 0.95
)

// Generator wraps the local inference endpoint. The HTTP client
// carries no timeout: local models can take tens of seconds on a
// long candidate prompt, and slow is preferred over aborted.
type Generator struct {
	logger     *zap.Logger
	modelName  string
	HTTPClient *http.Client
	APIURL     string
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

// generateResponse reads exactly one text field from the reply; all
// other fields are ignored.
type generateResponse struct {
	Response string `json:"response"`
}

func NewGenerator(logger *zap.Logger, apiURL, model string) *Generator {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = defaultAPIURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{
		logger:     logger,
		modelName:  model,
		APIURL:     apiURL,
		HTTPClient: &http.Client{},
	}
}

// GenerateContent sends the prompt and returns the completion text.
// A non-2xx status surfaces the response body verbatim as the error
// message.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	payload, err := json.Marshal(generateRequest{
		Model:       g.modelName,
		Prompt:      prompt,
		Stream:      false,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := g.APIURL + generatePath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	g.logger.Debug("ollama generate request",
		zap.String("url", url),
		zap.String("model", g.modelName),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = fmt.Sprintf("bad status: %s", resp.Status)
		}
		return "", fmt.Errorf("%s", message)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse generate response: %w", err)
	}

	output := strings.TrimSpace(parsed.Response)
	if output == "" {
		return "", errors.New("inference endpoint returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
