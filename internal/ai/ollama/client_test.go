package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestGenerateContentSendsFixedSampling(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("unmarshal request: %v", err)
		}
		w.Write([]byte(`{"response": "Team analysis follows.", "done": true, "eval_count": 42}`))
	}))
	defer server.Close()

	g := NewGenerator(zap.NewNop(), server.URL, "llama3.2:1b")

	out, err := g.GenerateContent(context.Background(), "pick a team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Team analysis follows." {
		t.Fatalf("unexpected output: %q", out)
	}

	if got["model"] != "llama3.2:1b" {
		t.Fatalf("unexpected model: %v", got["model"])
	}
	if got["stream"] != false {
		t.Fatalf("expected stream false, got %v", got["stream"])
	}
	if got["temperature"] != 0.8 {
		t.Fatalf("expected temperature 0.8, got %v", got["temperature"])
	}
	if got["top_p"] != 0.95 {
		t.Fatalf("expected top_p 0.95, got %v", got["top_p"])
	}
}

func TestGenerateContentErrorBodyVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model llama3.2:1b not loaded"))
	}))
	defer server.Close()

	g := NewGenerator(zap.NewNop(), server.URL, "")

	_, err := g.GenerateContent(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "model llama3.2:1b not loaded" {
		t.Fatalf("expected verbatim body, got: %v", err)
	}
}

func TestGenerateContentRejectsEmptyPromptAndReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response": "   "}`))
	}))
	defer server.Close()

	g := NewGenerator(zap.NewNop(), server.URL, "")

	if _, err := g.GenerateContent(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty prompt")
	}

	if _, err := g.GenerateContent(context.Background(), "hi"); err == nil {
		t.Fatal("expected error for empty reply")
	}
}
