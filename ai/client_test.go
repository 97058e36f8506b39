package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/onnwee/chefbot/telemetry"
)

func TestMain(m *testing.M) {
	telemetry.Init()
	os.Exit(m.Run())
}

func completionServer(t *testing.T, reply string, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			*requests++
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req struct {
			Model       string  `json:"model"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request decode: %v", err)
		}
		if req.Model != "gemma2-9b-it" || req.MaxTokens != 150 || req.Temperature != 0.7 {
			t.Errorf("generation params = %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[0].Content, "kitchen") {
			t.Errorf("system prompt missing channel name: %q", req.Messages[0].Content)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
}

func newTestClient(baseURL string) *Client {
	return &Client{APIKey: "test-key", BaseURL: baseURL, Model: "gemma2-9b-it", Channel: "kitchen"}
}

func TestAskNotConfiguredSkipsNetwork(t *testing.T) {
	requests := 0
	srv := completionServer(t, "never", &requests)
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.APIKey = ""
	got := c.Ask(context.Background(), "hi", "alice")
	if got != "❌ AI not configured. Missing API key." {
		t.Errorf("Ask() = %q", got)
	}
	if requests != 0 {
		t.Errorf("unconfigured client made %d network calls", requests)
	}
}

func TestAskSuccess(t *testing.T) {
	srv := completionServer(t, "  Salt early, taste often.  ", nil)
	defer srv.Close()

	got := newTestClient(srv.URL).Ask(context.Background(), "how do I season?", "alice")
	want := "👨🏻‍🍳 @alice: Salt early, taste often."
	if got != want {
		t.Errorf("Ask() = %q, want %q", got, want)
	}
}

func TestAskTruncatesLongReplies(t *testing.T) {
	long := strings.Repeat("x", 600)
	srv := completionServer(t, long, nil)
	defer srv.Close()

	got := newTestClient(srv.URL).Ask(context.Background(), "ramble", "alice")
	body := strings.TrimPrefix(got, "👨🏻‍🍳 @alice: ")
	if rl := len([]rune(body)); rl != 450 {
		t.Errorf("reply body length = %d runes, want 450", rl)
	}
	if !strings.HasSuffix(body, "...") {
		t.Errorf("truncated reply missing marker: %q", body[len(body)-10:])
	}
}

func TestAskMissingMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).Ask(context.Background(), "q", "alice")
	if got != "❌ @alice, LilChef is having trouble right now. Try cooking again later!" {
		t.Errorf("Ask() = %q", got)
	}
}

func TestAskServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).Ask(context.Background(), "q", "alice")
	if !strings.Contains(got, "having trouble") {
		t.Errorf("Ask() = %q, want trouble apology", got)
	}
}

func TestAskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	got := newTestClient(srv.URL).Ask(context.Background(), "q", "alice")
	if got != "❌ @alice, LilChef failed to cook. Try again later!" {
		t.Errorf("Ask() = %q", got)
	}
}
