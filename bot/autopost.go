package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/onnwee/chefbot/telemetry"
)

// AutoPoster periodically sends a fixed promotional message to the channel.
// It is toggled by the !autopost admin command. At most one posting task runs
// at a time: Start cancels any previous task before scheduling a new one, so
// repeated starts never leak tickers.
type AutoPoster struct {
	send     Sender
	message  string
	interval time.Duration

	mu      sync.Mutex
	enabled bool
	cancel  context.CancelFunc
}

func NewAutoPoster(send Sender, message string, interval time.Duration) *AutoPoster {
	return &AutoPoster{send: send, message: message, interval: interval}
}

// Start enables posting to channel. The first post happens one full interval
// after enabling, never immediately. Calling Start while already running
// replaces the task (idempotent enable).
func (p *AutoPoster) Start(channel string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.enabled = true
	slog.Info("auto-posting enabled", slog.String("channel", channel), slog.Duration("interval", p.interval))
	go p.run(ctx, channel)
}

func (p *AutoPoster) run(ctx context.Context, channel string) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.Enabled() {
				continue
			}
			p.send.Say(channel, p.message)
			telemetry.AutoPosts.Inc()
			slog.Info("auto-posted socials message", slog.String("channel", channel))
		}
	}
}

// Stop cancels the posting task and clears the enabled flag. Safe to call
// repeatedly or when never started.
func (p *AutoPoster) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.enabled {
		slog.Info("auto-posting disabled")
	}
	p.enabled = false
}

// Enabled reports whether posting is currently on.
func (p *AutoPoster) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}
