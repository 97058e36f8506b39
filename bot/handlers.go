package bot

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

var greetings = []string{
	"Hello %s! Welcome to the stream! 👋",
	"Hey there %s! Glad you're here! 🎉",
	"Welcome %s! Hope you enjoy the stream! ✨",
	"%s just entered the chat! What's good? 🔥",
}

var eightBallAnswers = []string{
	"It is certain", "Reply hazy, try again", "Don't count on it",
	"It is decidedly so", "Ask again later", "My reply is no",
	"Without a doubt", "Better not tell you now", "My sources say no",
	"Yes definitely", "Cannot predict now", "Outlook not so good",
	"You may rely on it", "Concentrate and ask again", "Very doubtful",
	"As I see it, yes", "Most likely", "Outlook good", "Yes", "Signs point to yes",
}

var lurkLines = []string{
	"Thanks for lurking %s! Enjoy the stream! 👻",
	"Happy lurking %s! 🕵️",
	"%s is now in lurk mode! 🥷",
	"Lurk away %s! We appreciate you being here! 💜",
}

var unlurkLines = []string{
	"Welcome back %s! 🎉",
	"%s has emerged from the shadows! 👋",
	"Look who's back! Hey %s! ✨",
	"%s decided to join the conversation! 🗣️",
}

var quotes = []string{
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Innovation distinguishes between a leader and a follower. - Steve Jobs",
	"Stay hungry, stay foolish. - Steve Jobs",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	"It is during our darkest moments that we must focus to see the light. - Aristotle",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"The only impossible journey is the one you never begin. - Tony Robbins",
	"Life is what happens to you while you're busy making other plans. - John Lennon",
}

var facts = []string{
	"Honey never spoils! Archaeologists have found edible honey in Egyptian tombs.",
	"A group of flamingos is called a 'flamboyance'.",
	"Octopuses have three hearts and blue blood.",
	"Bananas are berries, but strawberries aren't.",
	"A shrimp's heart is in its head.",
	"Wombat poop is cube-shaped.",
	"The shortest war in history lasted only 38-45 minutes.",
	"Cleopatra lived closer in time to the moon landing than to the construction of the Great Pyramid.",
}

var vibeLines = []string{
	"✨ %s is radiating good vibes today! The energy is immaculate! 🌟",
	"🔥 %s's vibe check: ELITE TIER! 💯",
	"🌈 %s is bringing rainbow energy to the chat! 🦄",
	"⚡ %s's vibe frequency: MAXIMUM POWER! 🚀",
	"😎 %s is too cool for the vibe check! 🧊",
	"🎵 %s is vibing to life's soundtrack! 🎶",
}

const commandList = "Available commands: !chefbot, !rules, !hello, !dice, !8ball, !flip, !rng, " +
	"!lurk, !unlurk, !hug, !quote, !fact, !time, !botuptime, !uptime, !love, !vibes, !energy, !discord, !socials"

func (d *Dispatcher) registerEveryone() {
	d.reg.Register(Everyone, "!hello", d.cmdHello)
	d.reg.Register(Everyone, "!dice", d.cmdDice)
	d.reg.Register(Everyone, "!time", d.cmdTime)
	d.reg.Register(Everyone, "!socials", d.cmdSocials)
	d.reg.Register(Everyone, "!commands", d.cmdCommands)
	d.reg.Register(Everyone, "!discord", d.cmdDiscord)
	d.reg.Register(Everyone, "!8ball", d.cmdEightBall)
	d.reg.Register(Everyone, "!flip", d.cmdFlip)
	d.reg.Register(Everyone, "!rng", d.cmdRNG)
	d.reg.Register(Everyone, "!lurk", d.cmdLurk)
	d.reg.Register(Everyone, "!unlurk", d.cmdUnlurk)
	d.reg.Register(Everyone, "!hug", d.cmdHug)
	d.reg.Register(Everyone, "!quote", d.cmdQuote)
	d.reg.Register(Everyone, "!fact", d.cmdFact)
	d.reg.Register(Everyone, "!love", d.cmdLove)
	d.reg.Register(Everyone, "!botuptime", d.cmdBotUptime)
	d.reg.Register(Everyone, "!uptime", d.cmdStreamUptime)
	d.reg.Register(Everyone, "!vibes", d.cmdVibes)
	d.reg.Register(Everyone, "!energy", d.cmdEnergy)
	d.reg.Register(Everyone, "!rules", d.cmdRules)
	d.reg.Register(Everyone, "!echo", d.cmdEcho)
	d.reg.Register(Everyone, "!chefbot", d.cmdChefbot)
}

// pick selects uniformly from lines and fills in the caller mention.
func (d *Dispatcher) pick(lines []string, c Caller) Outcome {
	return Reply(lines[d.intn(len(lines))], c.Mention())
}

func (d *Dispatcher) cmdHello(_ context.Context, inv *Invocation) Outcome {
	return d.pick(greetings, inv.Caller)
}

func (d *Dispatcher) cmdDice(_ context.Context, inv *Invocation) Outcome {
	roll := d.intn(6) + 1
	return Reply("🎲 %s rolled a %d!", inv.Caller.Mention(), roll)
}

func (d *Dispatcher) cmdTime(_ context.Context, _ *Invocation) Outcome {
	return Reply("⏰ Current time: %s", d.now().Format("15:04:05"))
}

func (d *Dispatcher) cmdSocials(_ context.Context, _ *Invocation) Outcome {
	return Reply("%s", d.socialsMessage)
}

func (d *Dispatcher) cmdCommands(_ context.Context, _ *Invocation) Outcome {
	return Reply("%s", commandList)
}

// cmdDiscord is gated by a 30-second global cooldown keyed by a fixed
// sentinel. During the cooldown it stays silent rather than spamming.
func (d *Dispatcher) cmdDiscord(_ context.Context, inv *Invocation) Outcome {
	if _, ok := d.discordGate.Acquire("discord", d.now()); !ok {
		return NoReply
	}
	return Reply("🎮 Join our Discord community: %s - See you there %s! 🧑🏻‍🍳", d.discordInvite, inv.Caller.Mention())
}

func (d *Dispatcher) cmdEightBall(_ context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return Reply("🎱 %s, ask me a question! Usage: !8ball <question>", inv.Caller.Mention())
	}
	return Reply("🎱 %s: %q", inv.Caller.Mention(), eightBallAnswers[d.intn(len(eightBallAnswers))])
}

func (d *Dispatcher) cmdFlip(_ context.Context, inv *Invocation) Outcome {
	if d.intn(2) == 0 {
		return Reply("🪙 %s flipped Heads!", inv.Caller.Mention())
	}
	return Reply("🥇 %s flipped Tails!", inv.Caller.Mention())
}

// cmdRNG accepts 0, 1, or 2 numeric arguments. One argument sets the max,
// two set [min, max]. Non-numeric arguments fall back to that slot's default.
func (d *Dispatcher) cmdRNG(_ context.Context, inv *Invocation) Outcome {
	min, max := 1, 100
	switch len(inv.Args) {
	case 0:
	case 1:
		if n, err := strconv.Atoi(inv.Args[0]); err == nil {
			max = n
		}
	default:
		if n, err := strconv.Atoi(inv.Args[0]); err == nil {
			min = n
		}
		if n, err := strconv.Atoi(inv.Args[1]); err == nil {
			max = n
		}
	}
	if min >= max {
		return Reply("❌ %s, minimum must be less than maximum!", inv.Caller.Mention())
	}
	result := d.intn(max-min+1) + min
	return Reply("🎯 %s: Random number between %d-%d is **%d**", inv.Caller.Mention(), min, max, result)
}

func (d *Dispatcher) cmdLurk(_ context.Context, inv *Invocation) Outcome {
	return d.pick(lurkLines, inv.Caller)
}

func (d *Dispatcher) cmdUnlurk(_ context.Context, inv *Invocation) Outcome {
	return d.pick(unlurkLines, inv.Caller)
}

func (d *Dispatcher) cmdHug(_ context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return Reply("🫂 %s gives everyone a big hug!", inv.Caller.Mention())
	}
	target := strings.TrimPrefix(inv.Args[0], "@")
	return Reply("🫂 %s gives @%s a warm hug!", inv.Caller.Mention(), target)
}

func (d *Dispatcher) cmdQuote(_ context.Context, _ *Invocation) Outcome {
	return Reply("💭 %s", quotes[d.intn(len(quotes))])
}

func (d *Dispatcher) cmdFact(_ context.Context, _ *Invocation) Outcome {
	return Reply("🧠 Fun Fact: %s", facts[d.intn(len(facts))])
}

func (d *Dispatcher) cmdLove(_ context.Context, inv *Invocation) Outcome {
	pct := d.intn(101)
	if len(inv.Args) == 0 {
		return Reply("💕 %s, you are %d%% loveable today!", inv.Caller.Mention(), pct)
	}
	target := strings.TrimPrefix(inv.Args[0], "@")
	return Reply("💕 Love between %s and @%s: %d%%", inv.Caller.Mention(), target, pct)
}

func (d *Dispatcher) cmdBotUptime(_ context.Context, _ *Invocation) Outcome {
	up := d.now().Sub(d.startedAt)
	h := int(up.Hours())
	m := int(up.Minutes()) % 60
	s := int(up.Seconds()) % 60
	return Reply("🧑🏻‍🍳 Bot has been awake for: %dh %dm %ds", h, m, s)
}

// cmdStreamUptime reports how long the channel has been live, via the Helix
// collaborator. Degrades to a notice when lookups aren't configured.
func (d *Dispatcher) cmdStreamUptime(ctx context.Context, inv *Invocation) Outcome {
	if d.streams == nil {
		return Reply("⏱️ %s, stream uptime lookups aren't configured.", inv.Caller.Mention())
	}
	startedAt, live, err := d.streams.StreamStartedAt(ctx, d.channel)
	if err != nil {
		slog.WarnContext(ctx, "stream uptime lookup failed", slog.Any("err", err))
		return Reply("❌ %s, couldn't reach Twitch to check the stream. Try again later!", inv.Caller.Mention())
	}
	if !live {
		return Reply("📴 %s, the stream is offline right now.", inv.Caller.Mention())
	}
	up := d.now().Sub(startedAt)
	h := int(up.Hours())
	m := int(up.Minutes()) % 60
	return Reply("⏱️ Stream has been live for %dh %dm", h, m)
}

func (d *Dispatcher) cmdVibes(_ context.Context, inv *Invocation) Outcome {
	return d.pick(vibeLines, inv.Caller)
}

func (d *Dispatcher) cmdEnergy(_ context.Context, inv *Invocation) Outcome {
	level := d.intn(101)
	var emoji, desc string
	switch {
	case level >= 90:
		emoji, desc = "⚡🔥⚡", "MAXIMUM OVERDRIVE!"
	case level >= 70:
		emoji, desc = "🚀", "High energy rocket mode!"
	case level >= 50:
		emoji, desc = "✨", "Steady positive energy!"
	case level >= 30:
		emoji, desc = "☕", "Could use some coffee..."
	default:
		emoji, desc = "😴", "Low power mode activated"
	}
	return Reply("%s %s's energy level: %d%% - %s", emoji, inv.Caller.Mention(), level, desc)
}

func (d *Dispatcher) cmdRules(_ context.Context, _ *Invocation) Outcome {
	return Reply("📋 Stream Rules: • Keep language clean • No politics/current events discussion • Backseating permitted as long as it is reasonable 🎯")
}

func (d *Dispatcher) cmdEcho(_ context.Context, inv *Invocation) Outcome {
	if len(inv.Args) == 0 {
		return Reply("Usage: !echo <message>")
	}
	return Reply("📢 %s", strings.Join(inv.Args, " "))
}

// cmdChefbot delegates to the AI collaborator. It is gated per-user by a
// 10-second cooldown whose check-and-set is atomic, so two in-flight messages
// from the same user can't both pass.
func (d *Dispatcher) cmdChefbot(ctx context.Context, inv *Invocation) Outcome {
	if d.ai == nil {
		return Reply("❌ AI not configured. Missing API key.")
	}
	if !d.aiEnabled.Load() {
		return Reply("🤖 Chef AI chat is currently disabled. Admins can enable it with !ai-toggle")
	}
	if len(inv.Args) == 0 {
		return Reply("👨🏻‍🍳 %s, ask me something, LET ME COOK! Usage: !chefbot <your question>", inv.Caller.Mention())
	}
	if rem, ok := d.aiGate.Acquire(inv.Caller.Name, d.now()); !ok {
		wait := int((rem + time.Second - 1) / time.Second)
		return Reply("⏱️ %s, please wait %d seconds before asking again.", inv.Caller.Mention(), wait)
	}
	question := strings.Join(inv.Args, " ")
	slog.InfoContext(ctx, "ai request", slog.String("caller", inv.Caller.Name), slog.Int("question_len", len(question)))
	return Reply("%s", d.ai.Ask(ctx, question, inv.Caller.Name))
}
