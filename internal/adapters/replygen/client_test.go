package replygen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"review_copilot/internal/adapters/replygen"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*replygen.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cl, err := replygen.New("test-key", ts.URL+"/v1", "gpt-4o-mini", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl, ts
}

func TestGenerateReply_Success(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("Thank you for the kind words!"))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := cl.GenerateReply(ctx, "great service")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply != "Thank you for the kind words!" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestGenerateReply_ServiceErrorFallsBack(t *testing.T) {
	var hits int32
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := cl.GenerateReply(ctx, "broken")
	if err != nil {
		t.Fatalf("service errors must degrade to the fallback, got err: %v", err)
	}
	if reply != replygen.FallbackReply {
		t.Fatalf("expected fallback reply, got %q", reply)
	}
	if atomic.LoadInt32(&hits) == 0 {
		t.Fatalf("expected the service to be called")
	}
}

func TestGenerateReply_EmptyCompletionFallsBack(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("   "))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	reply, err := cl.GenerateReply(ctx, "whatever")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply != replygen.FallbackReply {
		t.Fatalf("expected fallback reply for empty completion, got %q", reply)
	}
}

func TestGenerateReply_CanceledContext(t *testing.T) {
	cl, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("too late"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cl.GenerateReply(ctx, "text"); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := replygen.New("", "", "", 5); err == nil {
		t.Fatalf("expected error for missing API key")
	}
}
