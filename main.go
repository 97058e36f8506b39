// Command chefbot is the main entrypoint for the Twitch chat bot.
// It:
//   - Loads configuration and initializes structured logging.
//   - Builds the command dispatcher (permission tiers, cooldowns, AI delegate,
//     auto-poster) and connects it to Twitch IRC.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM, or when an admin issues !shutdown
// (!restart exits with code 1 so a supervisor restarts the process).
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/chefbot/ai"
	"github.com/onnwee/chefbot/bot"
	"github.com/onnwee/chefbot/chat"
	"github.com/onnwee/chefbot/config"
	"github.com/onnwee/chefbot/server"
	"github.com/onnwee/chefbot/telemetry"
	"github.com/onnwee/chefbot/twitchapi"
)

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load()

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.ValidateChatReady(); err != nil {
		slog.Error("config invalid", slog.Any("err", err))
		os.Exit(1)
	}
	if len(cfg.Admins) == 0 {
		slog.Warn("no authorized admin users set; admin commands will be unreachable")
	}
	if cfg.GroqAPIKey == "" {
		slog.Warn("GROQ_API_KEY not set; AI chat will report not configured")
	}

	// Metrics / telemetry init
	telemetry.Init()

	// OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdownTracing, err := telemetry.InitTracing("chefbot", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Admin !shutdown/!restart terminate via this callback; the exit code is
	// recorded once and the root context is cancelled so everything unwinds
	// through the same path as a signal.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	exitCode := 0
	var exitOnce sync.Once
	terminate := func(code int) {
		exitOnce.Do(func() {
			exitCode = code
			cancel()
		})
	}

	aiClient := &ai.Client{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Channel: cfg.TwitchChannel,
	}

	var streams bot.StreamSource
	if cfg.HelixReady() {
		streams = &twitchapi.HelixClient{
			AppTokenSource: &twitchapi.TokenSource{ClientID: cfg.TwitchClientID, ClientSecret: cfg.TwitchClientSecret},
			ClientID:       cfg.TwitchClientID,
		}
	} else {
		slog.Info("helix creds not set; !uptime will report not configured")
	}

	client := chat.New(cfg)
	dispatcher := bot.New(bot.Options{
		Channel:          cfg.TwitchChannel,
		Admins:           cfg.Admins,
		DiscordInvite:    cfg.DiscordInvite,
		SocialsMessage:   cfg.SocialsMessage(),
		Send:             client,
		AI:               aiClient,
		Streams:          streams,
		Terminate:        terminate,
		AutoPostInterval: cfg.AutoPostInterval,
	})

	startedAt := time.Now()
	go func() {
		status := func() server.Status {
			return server.Status{
				Channel:         cfg.TwitchChannel,
				Uptime:          time.Since(startedAt).Round(time.Second).String(),
				Commands:        dispatcher.Registry().Len(),
				AIEnabled:       dispatcher.AIEnabled(),
				AutoPostEnabled: dispatcher.AutoPostEnabled(),
			}
		}
		if err := server.Start(runCtx, cfg.HTTPAddr, status); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	slog.Info("connecting to twitch",
		slog.String("bot", cfg.TwitchBotUsername),
		slog.String("channel", cfg.TwitchChannel),
		slog.Int("admins", len(cfg.Admins)),
		slog.Bool("ai_configured", aiClient.Configured()))

	if err := client.Run(runCtx, dispatcher.Handle); err != nil {
		slog.Error("twitch chat connection failed", slog.Any("err", err))
		exitCode = 1
	}

	// os.Exit skips defers, so release resources explicitly.
	dispatcher.StopAutoPost()
	shutdownTracing()

	slog.Info("shutting down", slog.Int("code", exitCode))
	os.Exit(exitCode)
}
