package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragpipe/internal/domain"
)

// chatResponse mirrors the OpenAI-compatible chat completion response.
type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func testCompleter(t *testing.T, baseURL string) *Completer {
	t.Helper()
	c, err := NewCompleter(&CompleterConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   500,
		Provider:    "test",
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewCompleter failed: %v", err)
	}
	return c
}

func TestCompleter_Complete(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		resp := chatResponse{ID: "cmpl-1", Object: "chat.completion", Model: "test-model"}
		resp.Choices = append(resp.Choices, struct {
			Index   int `json:"index"`
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		}{Index: 0, FinishReason: "stop"})
		resp.Choices[0].Message.Role = "assistant"
		resp.Choices[0].Message.Content = "grounded answer"
		resp.Usage.TotalTokens = 77

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testCompleter(t, server.URL)

	result, err := c.Complete(context.Background(), "system msg", "user msg")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if result.Text != "grounded answer" {
		t.Errorf("Text = %q", result.Text)
	}
	if result.TotalTokens != 77 {
		t.Errorf("TotalTokens = %d, want 77", result.TotalTokens)
	}

	if len(gotReq.Messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "system msg" {
		t.Errorf("system message = %+v", gotReq.Messages[0])
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "user msg" {
		t.Errorf("user message = %+v", gotReq.Messages[1])
	}
}

func TestNewCompleter_MissingKey(t *testing.T) {
	_, err := NewCompleter(&CompleterConfig{Model: "test-model", Logger: zap.NewNop()})
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestCompleter_NoChoicesIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-2","object":"chat.completion","model":"test-model","choices":[],"usage":{"total_tokens":5}}`))
	}))
	defer server.Close()

	c := testCompleter(t, server.URL)

	result, err := c.Complete(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "" {
		t.Errorf("Text = %q, want empty", result.Text)
	}
	if result.TotalTokens != 5 {
		t.Errorf("TotalTokens = %d, want 5", result.TotalTokens)
	}
}

func TestCompleter_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"model overloaded"}`))
	}))
	defer server.Close()

	c := testCompleter(t, server.URL)

	_, err := c.Complete(context.Background(), "s", "u")
	if !errors.Is(err, domain.ErrCompletionProviderError) {
		t.Errorf("expected ErrCompletionProviderError, got %v", err)
	}
}
