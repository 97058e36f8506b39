package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/onnwee/chefbot/bot"
	"github.com/onnwee/chefbot/config"
	"github.com/onnwee/chefbot/telemetry"
)

// Twitch allows roughly 20 messages per 30 seconds for a regular bot account.
const (
	sendWindow = 30 * time.Second
	sendBurst  = 20
)

// MessageHandler receives one inbound chat message. It is invoked on its own
// goroutine per message.
type MessageHandler func(ctx context.Context, channel string, caller bot.Caller, text string, isSelf bool)

// Client wraps the IRC connection and the rate-limited outbound send path.
type Client struct {
	irc     *twitch.Client
	botName string
	channel string
	limiter *rate.Limiter

	mu  sync.RWMutex
	ctx context.Context
}

// New builds a client from validated chat config. Call Run to connect.
func New(cfg *config.Config) *Client {
	return &Client{
		irc:     twitch.NewClient(cfg.TwitchBotUsername, cfg.TwitchOAuthToken),
		botName: strings.ToLower(cfg.TwitchBotUsername),
		channel: cfg.TwitchChannel,
		limiter: rate.NewLimiter(rate.Limit(float64(sendBurst)/sendWindow.Seconds()), sendBurst),
	}
}

// Say sends text to channel after waiting for the outbound rate limit.
// Failures are logged and counted; the core does not retry.
func (c *Client) Say(channel, text string) {
	if err := c.limiter.Wait(c.context()); err != nil {
		telemetry.SendFailures.Inc()
		slog.Warn("send dropped waiting for rate limit", slog.Any("err", err))
		return
	}
	c.irc.Say(channel, text)
	telemetry.MessagesSent.Inc()
}

func (c *Client) context() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

// Run connects to Twitch IRC, joins the configured channel, and delivers
// messages to handle until ctx is cancelled. Cancellation disconnects the
// client and returns nil.
func (c *Client) Run(ctx context.Context, handle MessageHandler) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.irc.OnConnect(func() {
		slog.Info("connected to twitch chat",
			slog.String("bot", c.botName),
			slog.String("channel", c.channel))
	})
	c.irc.OnUserJoinMessage(func(m twitch.UserJoinMessage) {
		if strings.EqualFold(m.User, c.botName) {
			slog.Info("joined channel", slog.String("channel", m.Channel))
		}
	})
	c.irc.OnReconnectMessage(func(twitch.ReconnectMessage) {
		slog.Info("twitch requested reconnect")
	})
	c.irc.OnNoticeMessage(func(m twitch.NoticeMessage) {
		slog.Info("twitch notice", slog.String("channel", m.Channel), slog.String("message", m.Message))
	})
	c.irc.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		mctx := telemetry.WithCorrelation(ctx, uuid.NewString())
		caller := callerFromMessage(msg)
		isSelf := strings.EqualFold(msg.User.Name, c.botName)
		// One worker per message; ordering across users is not guaranteed,
		// per-key cooldowns stay consistent via the tracker's check-and-set.
		go handle(mctx, msg.Channel, caller, msg.Message, isSelf)
	})

	go func() {
		<-ctx.Done()
		if err := c.irc.Disconnect(); err != nil {
			slog.Debug("disconnect", slog.Any("err", err))
		}
	}()

	c.irc.Join(c.channel)
	if err := c.irc.Connect(); err != nil {
		if ctx.Err() != nil || errors.Is(err, twitch.ErrClientDisconnected) {
			return nil
		}
		return fmt.Errorf("twitch chat connect: %w", err)
	}
	return nil
}

// callerFromMessage maps the transport's user metadata into the value type
// the permission evaluator needs.
func callerFromMessage(msg twitch.PrivateMessage) bot.Caller {
	return bot.Caller{
		Name:          strings.ToLower(msg.User.Name),
		DisplayName:   msg.User.DisplayName,
		IsModerator:   msg.User.Badges["moderator"] > 0 || msg.Tags["mod"] == "1",
		IsBroadcaster: msg.User.Badges["broadcaster"] > 0,
	}
}
