package twitchapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func withStreamsServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	old := streamsURL
	streamsURL = srv.URL
	t.Cleanup(func() {
		streamsURL = old
		srv.Close()
	})
}

func primedClient() *HelixClient {
	ts := &TokenSource{ClientID: "test-client-id", ClientSecret: "test-secret"}
	ts.SetToken("test-token", time.Now().Add(time.Hour))
	return &HelixClient{AppTokenSource: ts, ClientID: "test-client-id"}
}

func TestGetStreamsLive(t *testing.T) {
	withStreamsServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_login"); got != "livechannel" {
			t.Errorf("user_login = %q, want livechannel", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Client-Id"); got != "test-client-id" {
			t.Errorf("Client-Id = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{
				"title":      "Live Now",
				"started_at": "2024-10-15T14:30:00Z",
			}},
		})
	})

	streams, err := primedClient().GetStreams(context.Background(), "livechannel")
	if err != nil {
		t.Fatalf("GetStreams() error = %v", err)
	}
	if len(streams) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(streams))
	}
	if streams[0].Title != "Live Now" {
		t.Errorf("stream title = %q, want Live Now", streams[0].Title)
	}
	want := time.Date(2024, 10, 15, 14, 30, 0, 0, time.UTC)
	if !streams[0].StartedAt.Equal(want) {
		t.Errorf("started_at = %v, want %v", streams[0].StartedAt, want)
	}
}

func TestGetStreamsOffline(t *testing.T) {
	withStreamsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	streams, err := primedClient().GetStreams(context.Background(), "quietchannel")
	if err != nil {
		t.Fatalf("GetStreams() error = %v", err)
	}
	if len(streams) != 0 {
		t.Errorf("expected no streams, got %d", len(streams))
	}
}

func TestGetStreamsEmptyChannel(t *testing.T) {
	if _, err := primedClient().GetStreams(context.Background(), ""); err == nil {
		t.Errorf("expected error for empty channel")
	}
}

func TestStreamStartedAt(t *testing.T) {
	withStreamsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"started_at": "2024-10-15T14:30:00Z"}},
		})
	})

	startedAt, live, err := primedClient().StreamStartedAt(context.Background(), "livechannel")
	if err != nil {
		t.Fatalf("StreamStartedAt() error = %v", err)
	}
	if !live {
		t.Fatalf("expected live = true")
	}
	want := time.Date(2024, 10, 15, 14, 30, 0, 0, time.UTC)
	if !startedAt.Equal(want) {
		t.Errorf("startedAt = %v, want %v", startedAt, want)
	}
}

func TestStreamStartedAtOffline(t *testing.T) {
	withStreamsServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	})

	_, live, err := primedClient().StreamStartedAt(context.Background(), "quietchannel")
	if err != nil {
		t.Fatalf("StreamStartedAt() error = %v", err)
	}
	if live {
		t.Errorf("expected live = false for offline channel")
	}
}

func TestGetStreamsServerError(t *testing.T) {
	withStreamsServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	if _, err := primedClient().GetStreams(context.Background(), "livechannel"); err == nil {
		t.Errorf("expected error on 500 response")
	}
}
