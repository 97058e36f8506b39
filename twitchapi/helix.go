// Package twitchapi contains a minimal Helix API helper used to look up live
// stream status for the !uptime command, using an app access token.
package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// streamsURL is overridable in tests.
var streamsURL = "https://api.twitch.tv/helix/streams"

// HelixClient provides the stream lookup needed by the bot.
type HelixClient struct {
	AppTokenSource *TokenSource
	ClientID       string
	HTTPClient     *http.Client
}

func (hc *HelixClient) http() *http.Client {
	if hc.HTTPClient != nil {
		return hc.HTTPClient
	}
	return http.DefaultClient
}

// Stream is the subset of Helix stream metadata the bot cares about.
type Stream struct {
	Title     string    `json:"title"`
	StartedAt time.Time `json:"started_at"`
}

// GetStreams returns the live streams for a channel login. An offline channel
// yields an empty slice, not an error.
func (hc *HelixClient) GetStreams(ctx context.Context, channel string) ([]Stream, error) {
	if channel == "" {
		return nil, fmt.Errorf("channel empty")
	}
	tok, err := hc.AppTokenSource.Get(ctx)
	if err != nil {
		return nil, err
	}
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, streamsURL, nil)
	q := req.URL.Query()
	q.Set("user_login", channel)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Client-Id", hc.ClientID)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := hc.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("helix streams request failed: %s", resp.Status)
	}
	var body struct {
		Data []Stream `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// StreamStartedAt adapts GetStreams to the dispatcher's StreamSource
// collaborator: it reports whether channel is live and since when.
func (hc *HelixClient) StreamStartedAt(ctx context.Context, channel string) (time.Time, bool, error) {
	streams, err := hc.GetStreams(ctx, channel)
	if err != nil {
		return time.Time{}, false, err
	}
	if len(streams) == 0 {
		return time.Time{}, false, nil
	}
	return streams[0].StartedAt.UTC(), true, nil
}
