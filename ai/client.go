// Package ai wraps the Groq chat-completions API (OpenAI-compatible) behind
// a never-failing Ask: request and parse errors are mapped to user-facing
// apology strings so the dispatcher never sees an error from this
// collaborator.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/chefbot/telemetry"
)

// maxResponseLen keeps replies under the Twitch 500-character message limit
// once the mention prefix is added.
const maxResponseLen = 450

// Client invokes the external text-generation service for !chefbot.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string
	// Channel names the community in the system prompt.
	Channel    string
	HTTPClient *http.Client
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.APIKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends question to the model and returns a chat-ready reply. It never
// returns an error: a missing key yields the "not configured" notice without
// any network call, and request failures yield an apology naming the user.
func (c *Client) Ask(ctx context.Context, question, username string) string {
	if !c.Configured() {
		return "❌ AI not configured. Missing API key."
	}
	telemetry.AIRequests.Inc()
	ctx, span := telemetry.StartSpan(ctx, "ai", "chat_completion",
		attribute.String("model", c.Model))
	defer span.End()

	body := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt()},
			{Role: "user", Content: question},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, err)
		slog.ErrorContext(ctx, "ai request marshal failed", slog.Any("err", err))
		return havingTrouble(username)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, err)
		return havingTrouble(username)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var resp *http.Response
	telemetry.TimeFunc(telemetry.AIRequestDuration, func() {
		resp, err = c.http().Do(req)
	})
	if err != nil {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, err)
		slog.WarnContext(ctx, "ai request failed", slog.Any("err", err))
		return fmt.Sprintf("❌ @%s, LilChef failed to cook. Try again later!", username)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, fmt.Errorf("ai request status %s", resp.Status))
		slog.WarnContext(ctx, "ai request rejected", slog.String("status", resp.Status))
		return havingTrouble(username)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, err)
		slog.WarnContext(ctx, "ai response decode failed", slog.Any("err", err))
		return havingTrouble(username)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		telemetry.AIFailures.Inc()
		telemetry.RecordError(span, fmt.Errorf("ai response missing message"))
		return havingTrouble(username)
	}

	answer := strings.TrimSpace(out.Choices[0].Message.Content)
	if r := []rune(answer); len(r) > maxResponseLen {
		answer = string(r[:maxResponseLen-3]) + "..."
	}
	telemetry.SetSpanSuccess(span)
	return fmt.Sprintf("👨🏻‍🍳 @%s: %s", username, answer)
}

func (c *Client) systemPrompt() string {
	return fmt.Sprintf("You are a helpful Twitch chat assistant named Lil Chef. "+
		"Keep responses under 200 characters and friendly. You're helping %s's community. "+
		"Be concise, helpful, intelligent, and engaging. You are speaking with mostly adults, "+
		"so no need for any type of odd slang. You do not need to introduce yourself.", c.Channel)
}

func havingTrouble(username string) string {
	return fmt.Sprintf("❌ @%s, LilChef is having trouble right now. Try cooking again later!", username)
}
