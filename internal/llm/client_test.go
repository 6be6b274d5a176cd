package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionBody(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestCompleteJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4" || len(req.Messages) != 2 {
			t.Fatalf("unexpected request: %+v", req)
		}
		if req.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %q", req.ResponseFormat.Type)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody(`{"fit_score": 85, "reasoning": "strong match"}`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4", server.Client())

	var out struct {
		FitScore  int    `json:"fit_score"`
		Reasoning string `json:"reasoning"`
	}
	err := client.CompleteJSON(context.Background(), Request{System: "sys", User: "user", Temperature: 0.3}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FitScore != 85 || out.Reasoning != "strong match" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestCompleteJSON_SchemaViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("this is not json")))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4", server.Client())

	var out map[string]any
	if err := client.CompleteJSON(context.Background(), Request{User: "user"}, &out); err == nil {
		t.Fatalf("expected schema error for non-JSON content")
	}
}

func TestCompleteJSON_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test", "gpt-4", server.Client())

	var out map[string]any
	if err := client.CompleteJSON(context.Background(), Request{User: "user"}, &out); err == nil {
		t.Fatalf("expected error for non-2xx status")
	}
}

func TestCompleteJSON_MissingAPIKey(t *testing.T) {
	client := NewClient("http://localhost", "", "gpt-4", nil)

	var out map[string]any
	if err := client.CompleteJSON(context.Background(), Request{User: "user"}, &out); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
