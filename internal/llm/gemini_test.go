package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func replyWith(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, status int, body string) (*GeminiClient, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		_, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c := NewGeminiClient(GeminiOptions{APIKey: "k-123", Model: "gemini-2.0-flash", BaseURL: srv.URL}, zap.NewNop())
	return c, &captured
}

func TestGenerateText(t *testing.T) {
	c, req := newTestClient(t, http.StatusOK, replyWith("Hello chef"))

	text, err := c.GenerateText(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello chef", text)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", req.URL.Path)
	assert.Equal(t, "k-123", req.Header.Get("x-goog-api-key"))
}

func TestGenerateTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{}}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrQuotaExceeded)
		}},
		{"upstream", http.StatusServiceUnavailable, `{}`, func(t *testing.T, err error) {
			var up *UpstreamError
			require.ErrorAs(t, err, &up)
			assert.Equal(t, http.StatusServiceUnavailable, up.StatusCode)
		}},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrMalformedReply)
		}},
		{"not json", http.StatusOK, `<html>`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrMalformedReply)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.status, tt.body)
			_, err := c.GenerateText(context.Background(), "hi")
			tt.check(t, err)
		})
	}
}

func TestMissingAPIKey(t *testing.T) {
	c := NewGeminiClient(GeminiOptions{Model: "m", BaseURL: "http://unused"}, zap.NewNop())
	assert.False(t, c.Configured())
	_, err := c.GenerateText(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateJSONStripsFence(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, replyWith("```json\n{\"overallInsight\":\"ok\"}\n```"))

	var out struct {
		OverallInsight string `json:"overallInsight"`
	}
	require.NoError(t, c.GenerateJSON(context.Background(), "p", &out))
	assert.Equal(t, "ok", out.OverallInsight)
}

func TestDecodeJSON(t *testing.T) {
	var v map[string]int
	require.NoError(t, DecodeJSON(`  {"a":1} `, &v))
	assert.Equal(t, 1, v["a"])

	require.NoError(t, DecodeJSON("```\n{\"a\":2}```", &v))
	assert.Equal(t, 2, v["a"])

	assert.ErrorIs(t, DecodeJSON("sure! here you go", &v), ErrMalformedReply)
}

func TestFiberError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrMissingAPIKey, fiber.StatusInternalServerError},
		{ErrQuotaExceeded, fiber.StatusTooManyRequests},
		{ErrMalformedReply, fiber.StatusBadGateway},
		{&UpstreamError{StatusCode: 500}, fiber.StatusBadGateway},
		{context.DeadlineExceeded, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FiberError(tt.err, "failed").Code, tt.err.Error())
	}
}
