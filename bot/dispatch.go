// Package bot implements the command dispatch core: parsing inbound chat
// messages into commands, authorizing callers against the tier model, and
// executing handlers with isolated per-command state (cooldowns, toggles).
// The transport and the AI service are collaborators injected at startup.
package bot

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/onnwee/chefbot/telemetry"
)

const (
	discordCooldown = 30 * time.Second
	aiCooldown      = 10 * time.Second

	defaultShutdownGrace = time.Second
)

// Sender is the outbound send capability of the transport. Sends are
// asynchronous and may fail; the transport logs failures, the core does not
// retry.
type Sender interface {
	Say(channel, text string)
}

// AIClient is the external text-generation collaborator. Ask never fails;
// errors are mapped to user-facing text by the implementation.
type AIClient interface {
	Ask(ctx context.Context, question, username string) string
	Configured() bool
}

// StreamSource looks up whether the channel is live and since when.
// Optional; the !uptime command degrades without it.
type StreamSource interface {
	StreamStartedAt(ctx context.Context, channel string) (time.Time, bool, error)
}

// Options configures a Dispatcher. Send and Terminate are required; the rest
// have working defaults or degrade gracefully when absent.
type Options struct {
	Channel        string
	Admins         []string
	DiscordInvite  string
	SocialsMessage string

	Send      Sender
	AI        AIClient
	Streams   StreamSource
	Terminate func(code int)

	AutoPostInterval time.Duration
	ShutdownGrace    time.Duration

	// Now and Intn are injected for tests; defaults are time.Now and
	// math/rand/v2.IntN.
	Now  func() time.Time
	Intn func(n int) int
}

// Dispatcher holds the command registry, the permission evaluator, and all
// mutable runtime state (cooldown maps, AI toggle, auto-post state). It is
// constructed once at startup and mutated only through command handlers.
type Dispatcher struct {
	reg  *Registry
	eval *Evaluator
	send Sender

	ai      AIClient
	streams StreamSource
	poster  *AutoPoster

	discordGate *CooldownTracker
	aiGate      *CooldownTracker
	aiEnabled   atomic.Bool

	channel        string
	discordInvite  string
	socialsMessage string

	terminate     func(code int)
	shutdownGrace time.Duration

	startedAt time.Time
	now       func() time.Time
	intn      func(n int) int
}

// New builds a Dispatcher with the full command catalog registered.
func New(opts Options) *Dispatcher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	if opts.AutoPostInterval <= 0 {
		opts.AutoPostInterval = 10 * time.Minute
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = defaultShutdownGrace
	}
	if opts.Terminate == nil {
		opts.Terminate = func(int) {}
	}
	d := &Dispatcher{
		reg:            NewRegistry(),
		eval:           NewEvaluator(opts.Admins),
		send:           opts.Send,
		ai:             opts.AI,
		streams:        opts.Streams,
		discordGate:    NewCooldownTracker(discordCooldown),
		aiGate:         NewCooldownTracker(aiCooldown),
		channel:        opts.Channel,
		discordInvite:  opts.DiscordInvite,
		socialsMessage: opts.SocialsMessage,
		terminate:      opts.Terminate,
		shutdownGrace:  opts.ShutdownGrace,
		startedAt:      opts.Now(),
		now:            opts.Now,
		intn:           opts.Intn,
	}
	d.poster = NewAutoPoster(opts.Send, opts.SocialsMessage, opts.AutoPostInterval)
	d.aiEnabled.Store(true)
	d.registerEveryone()
	d.registerModerator()
	d.registerAdmin()
	return d
}

// Registry exposes the command table, mainly for status reporting.
func (d *Dispatcher) Registry() *Registry { return d.reg }

// AIEnabled reports the AI chat toggle.
func (d *Dispatcher) AIEnabled() bool { return d.aiEnabled.Load() }

// AutoPostEnabled reports whether the promotional poster is running.
func (d *Dispatcher) AutoPostEnabled() bool { return d.poster.Enabled() }

// StopAutoPost cancels the promotional poster; called on shutdown.
func (d *Dispatcher) StopAutoPost() { d.poster.Stop() }

// Handle processes one inbound chat message to completion: echo suppression,
// parse, tier check, handler execution, and at most one outbound send.
// Handler panics are caught here; recoverable errors never crash the
// dispatcher or abort processing of later messages.
func (d *Dispatcher) Handle(ctx context.Context, channel string, caller Caller, text string, isSelf bool) {
	if isSelf {
		return
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	token := strings.ToLower(fields[0])
	if !strings.HasPrefix(token, "!") {
		return
	}
	fn, tier, ok := d.reg.Lookup(token)
	if !ok {
		// Unknown commands are not errors; stay silent.
		return
	}

	ctx, span := telemetry.StartSpan(ctx, "bot", "dispatch",
		attribute.String("command", token),
		attribute.String("tier", tier.String()),
	)
	defer span.End()

	if d.eval.Classify(caller) < tier {
		telemetry.CommandsDenied.Inc()
		slog.WarnContext(ctx, "command denied",
			slog.String("command", token),
			slog.String("caller", caller.Name),
			slog.String("required", tier.String()))
		d.send.Say(channel, "❌ "+caller.Mention()+", "+tier.String()+" privileges required for "+token)
		return
	}

	inv := &Invocation{Channel: channel, Caller: caller, Args: fields[1:]}
	out := d.invoke(ctx, token, fn, inv)
	telemetry.CommandsHandled.Inc()
	slog.InfoContext(ctx, "command executed",
		slog.String("command", token),
		slog.String("caller", caller.Name),
		slog.String("tier", tier.String()))
	if out.Empty() {
		return
	}
	d.send.Say(channel, out.Text)
}

// invoke runs the handler with panic recovery at the dispatch boundary.
func (d *Dispatcher) invoke(ctx context.Context, token string, fn HandlerFunc, inv *Invocation) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.HandlerPanics.Inc()
			slog.ErrorContext(ctx, "command handler panicked",
				slog.String("command", token),
				slog.String("caller", inv.Caller.Name),
				slog.Any("panic", r))
			out = Reply("❌ Sorry %s, something went wrong with that command.", inv.Caller.Mention())
		}
	}()
	return fn(ctx, inv)
}
