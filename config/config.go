// Package config loads environment variables and provides a typed Config used across the bot.
// It applies sensible defaults so the binary can run locally with minimal setup.
// For required chat credentials, use ValidateChatReady.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// Twitch chat (required for connecting)
	TwitchChannel     string
	TwitchBotUsername string
	TwitchOAuthToken  string

	// Twitch Helix (optional; enables the !uptime command)
	TwitchClientID     string
	TwitchClientSecret string

	// Admin allow-list, lowercased login names
	Admins []string

	// Social links used by !socials, !discord, and the auto-poster
	DiscordInvite  string
	TwitterHandle  string
	YouTubeChannel string

	// AI chat (optional; !chefbot reports "not configured" without a key)
	GroqAPIKey string
	AIModel    string
	AIBaseURL  string

	// Intervals
	AutoPostInterval time.Duration

	// HTTP server
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if Twitch creds
// are missing; use ValidateChatReady() before connecting. Missing optional variables
// disable features (admin commands, AI chat, stream uptime).
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchChannel = os.Getenv("TWITCH_CHANNEL")
	cfg.TwitchBotUsername = os.Getenv("TWITCH_BOT_USERNAME")
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")
	cfg.TwitchClientID = os.Getenv("TWITCH_CLIENT_ID")
	cfg.TwitchClientSecret = os.Getenv("TWITCH_CLIENT_SECRET")

	if v := os.Getenv("AUTHORIZED_USERS"); v != "" {
		for _, u := range strings.Split(v, ",") {
			u = strings.ToLower(strings.TrimSpace(u))
			if u != "" {
				cfg.Admins = append(cfg.Admins, u)
			}
		}
	}

	cfg.DiscordInvite = os.Getenv("DISCORD_INVITE")
	cfg.TwitterHandle = os.Getenv("TWITTER_HANDLE")
	cfg.YouTubeChannel = os.Getenv("YOUTUBE_CHANNEL")

	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	cfg.AIModel = os.Getenv("AI_MODEL")
	if cfg.AIModel == "" {
		cfg.AIModel = "gemma2-9b-it"
	}
	cfg.AIBaseURL = os.Getenv("AI_BASE_URL")
	if cfg.AIBaseURL == "" {
		cfg.AIBaseURL = "https://api.groq.com/openai/v1"
	}

	cfg.AutoPostInterval = 10 * time.Minute
	if v := os.Getenv("AUTOPOST_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid AUTOPOST_INTERVAL %q: %v", v, err)
		}
		cfg.AutoPostInterval = d
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateChatReady checks required fields for connecting to Twitch chat.
func (c *Config) ValidateChatReady() error {
	if c.TwitchChannel == "" || c.TwitchBotUsername == "" || c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNEL, TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN")
	}
	return nil
}

// HelixReady reports whether Helix API credentials are configured.
func (c *Config) HelixReady() bool {
	return c.TwitchClientID != "" && c.TwitchClientSecret != ""
}

// SocialsMessage formats the promotional line used by !socials and the auto-poster.
func (c *Config) SocialsMessage() string {
	return fmt.Sprintf("🔗 Follow us! Discord: %s | Twitter: %s | Follow the stream! 🎯 | Youtube: %s",
		c.DiscordInvite, c.TwitterHandle, c.YouTubeChannel)
}
