package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is what the forecast and chat handlers need from a model.
type Client interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, dest any) error
}

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

func NewGeminiClient(opts GeminiOptions, log *zap.Logger) *GeminiClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		log:     log,
	}
}

func (g *GeminiClient) Configured() bool {
	return g.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends a single-turn prompt and returns the first candidate's text.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		g.log.Warn("gemini quota exceeded", zap.ByteString("body", raw))
		return "", ErrQuotaExceeded
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.Error("gemini api error", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		g.log.Error("gemini response is not json", zap.ByteString("body", raw))
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		g.log.Error("gemini response has no text", zap.ByteString("body", raw))
		return "", fmt.Errorf("%w: no text content", ErrMalformedReply)
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateJSON decodes the model's reply into dest.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string, dest any) error {
	text, err := g.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}
	if err := DecodeJSON(text, dest); err != nil {
		g.log.Error("failed to parse gemini reply", zap.String("text", text), zap.Error(err))
		return err
	}
	return nil
}
