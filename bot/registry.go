package bot

import (
	"context"
	"fmt"
	"strings"
)

// Outcome is a handler's result. The zero value means no reply. Directive
// outcomes carry a platform control string such as "/timeout user 60"; they
// are sent exactly like replies but the platform interprets them as
// moderation actions.
type Outcome struct {
	Text        string
	IsDirective bool
}

// NoReply is the empty outcome; nothing is sent.
var NoReply = Outcome{}

// Reply formats a plain chat reply.
func Reply(format string, args ...any) Outcome {
	return Outcome{Text: fmt.Sprintf(format, args...)}
}

// Directive wraps a platform control string.
func Directive(text string) Outcome {
	return Outcome{Text: text, IsDirective: true}
}

// Empty reports whether the outcome carries no text to send.
func (o Outcome) Empty() bool { return o.Text == "" }

// Invocation carries everything a handler may inspect.
type Invocation struct {
	Channel string
	Caller  Caller
	Args    []string
}

// HandlerFunc executes one command. Handlers never send directly (except the
// shutdown family, which needs to flush a farewell before terminating); they
// return an Outcome and the dispatcher sends it.
type HandlerFunc func(ctx context.Context, inv *Invocation) Outcome

// Registry maps command tokens to handlers in three disjoint tier tables.
// Lookup precedence is Admin, then Moderator, then Everyone; a token lives in
// exactly one table, which Register enforces at startup.
type Registry struct {
	tables map[Tier]map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{tables: map[Tier]map[string]HandlerFunc{
		Admin:     {},
		Moderator: {},
		Everyone:  {},
	}}
}

// Register adds token to tier's table. Tokens are case-insensitive and must
// carry the "!" sigil. Registration happens once at startup; a duplicate
// token in any tier is a programming error and panics.
func (r *Registry) Register(tier Tier, token string, fn HandlerFunc) {
	token = strings.ToLower(token)
	if !strings.HasPrefix(token, "!") {
		panic(fmt.Sprintf("bot: command %q missing ! sigil", token))
	}
	for t, table := range r.tables {
		if _, ok := table[token]; ok {
			panic(fmt.Sprintf("bot: command %q already registered in tier %s", token, t))
		}
	}
	r.tables[tier][token] = fn
}

// Lookup resolves a case-folded token to its handler and required tier,
// checking Admin, then Moderator, then Everyone. First match wins.
func (r *Registry) Lookup(token string) (HandlerFunc, Tier, bool) {
	token = strings.ToLower(token)
	for _, tier := range []Tier{Admin, Moderator, Everyone} {
		if fn, ok := r.tables[tier][token]; ok {
			return fn, tier, true
		}
	}
	return nil, Everyone, false
}

// Len returns the total number of registered commands.
func (r *Registry) Len() int {
	n := 0
	for _, table := range r.tables {
		n += len(table)
	}
	return n
}
