package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

func (d *Dispatcher) registerAdmin() {
	d.reg.Register(Admin, "!shutdown", d.cmdShutdown)
	d.reg.Register(Admin, "!restart", d.cmdRestart)
	d.reg.Register(Admin, "!autopost", d.cmdAutoPost)
	d.reg.Register(Admin, "!autopost-status", d.cmdAutoPostStatus)
	d.reg.Register(Admin, "!ai-toggle", d.cmdAIToggle)
	d.reg.Register(Admin, "!ai-status", d.cmdAIStatus)
	d.reg.Register(Admin, "!adminhelp", d.cmdAdminHelp)
}

// exit sends the farewell directly (bypassing the send-if-non-nil path, since
// termination follows), then schedules the terminate callback after a short
// grace period so the message can flush. Termination is two-phase: send,
// then signal; the grace is a best effort, not a guarantee.
func (d *Dispatcher) exit(ctx context.Context, inv *Invocation, farewell string, code int) Outcome {
	d.send.Say(inv.Channel, farewell)
	slog.InfoContext(ctx, "termination scheduled",
		slog.String("by", inv.Caller.Name),
		slog.Int("code", code),
		slog.Duration("grace", d.shutdownGrace))
	time.AfterFunc(d.shutdownGrace, func() { d.terminate(code) })
	return NoReply
}

func (d *Dispatcher) cmdShutdown(ctx context.Context, inv *Invocation) Outcome {
	return d.exit(ctx, inv, "🔧 Bot shutting down by admin "+inv.Caller.Mention()+"...", 0)
}

// cmdRestart exits with code 1 so a supervisor restarts the process.
func (d *Dispatcher) cmdRestart(ctx context.Context, inv *Invocation) Outcome {
	return d.exit(ctx, inv, "🔄 Bot restarting by admin "+inv.Caller.Mention()+"...", 1)
}

func (d *Dispatcher) cmdAutoPost(ctx context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		state := "disabled"
		if d.poster.Enabled() {
			state = "enabled"
		}
		return Reply("🔧 Auto-posting is currently %s. Use !autopost on/off", state)
	}
	switch strings.ToLower(inv.Args[0]) {
	case "on", "enable":
		d.poster.Start(inv.Channel)
		return Reply("✅ Auto-posting socials enabled! Will post every %s.", d.poster.interval)
	case "off", "disable":
		d.poster.Stop()
		return Reply("❌ Auto-posting socials disabled.")
	default:
		return Reply("❓ Usage: !autopost on/off")
	}
}

func (d *Dispatcher) cmdAutoPostStatus(_ context.Context, _ *Invocation) Outcome {
	if d.poster.Enabled() {
		return Reply("📊 Auto-posting status: ✅ Enabled (every %s)", d.poster.interval)
	}
	return Reply("📊 Auto-posting status: ❌ Disabled")
}

func (d *Dispatcher) cmdAIToggle(ctx context.Context, inv *Invocation) Outcome {
	enabled := !d.aiEnabled.Load()
	d.aiEnabled.Store(enabled)
	slog.InfoContext(ctx, "ai chat toggled", slog.Bool("enabled", enabled), slog.String("by", inv.Caller.Name))
	if enabled {
		return Reply("👨🏻‍🍳 Chef AI chat enabled! Chatters can now use !chefbot <question>")
	}
	return Reply("👨🏻‍🍳 Chef AI chat disabled! Chef AI commands are now disabled and no longer cooking.")
}

func (d *Dispatcher) cmdAIStatus(_ context.Context, _ *Invocation) Outcome {
	state := "Disabled"
	if d.aiEnabled.Load() {
		state = "Enabled"
	}
	api := "❌ No API key"
	if d.ai != nil && d.ai.Configured() {
		api = "✅ API key configured"
	}
	return Reply("👨🏻‍🍳 Chef AI Status: %s | %s", state, api)
}

func (d *Dispatcher) cmdAdminHelp(_ context.Context, _ *Invocation) Outcome {
	return Reply("🔧 Admin commands: !shutdown, !restart, !autopost, !autopost-status, !ai-toggle, !ai-status, !adminhelp")
}
