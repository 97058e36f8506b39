package bot

import (
	"context"
	"log/slog"
	"strings"
)

func (d *Dispatcher) registerModerator() {
	d.reg.Register(Moderator, "!timeout", d.cmdTimeout)
	d.reg.Register(Moderator, "!ban", d.cmdBan)
	d.reg.Register(Moderator, "!unban", d.cmdUnban)
	d.reg.Register(Moderator, "!clear", d.cmdClear)
}

// Operator commands return directives: platform control strings sent as
// ordinary chat text. The platform enforces them; the bot does not.

func (d *Dispatcher) cmdTimeout(_ context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return NoReply
	}
	target := strings.TrimPrefix(inv.Args[0], "@")
	return Directive("/timeout " + target + " 60")
}

func (d *Dispatcher) cmdBan(ctx context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return Reply("❌ %s, usage: !ban <username> [reason]", inv.Caller.Mention())
	}
	target := strings.TrimPrefix(inv.Args[0], "@")
	reason := strings.Join(inv.Args[1:], " ")
	if reason == "" {
		reason = "No reason provided"
	}
	slog.InfoContext(ctx, "ban issued",
		slog.String("by", inv.Caller.Name),
		slog.String("target", target),
		slog.String("reason", reason))
	return Directive("/ban " + target + " " + reason)
}

func (d *Dispatcher) cmdUnban(ctx context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return Reply("❌ %s, usage: !unban <username>", inv.Caller.Mention())
	}
	target := strings.TrimPrefix(inv.Args[0], "@")
	slog.InfoContext(ctx, "unban issued",
		slog.String("by", inv.Caller.Name),
		slog.String("target", target))
	return Directive("/unban " + target)
}

func (d *Dispatcher) cmdClear(_ context.Context, _ *Invocation) Outcome {
	return Directive("/clear")
}
