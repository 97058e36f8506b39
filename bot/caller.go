package bot

import "strings"

// Caller is the chat participant who sent a message, with the role flags the
// permission evaluator needs. It is derived per-message at the transport
// boundary and never persisted.
type Caller struct {
	// Name is the login name, lowercased for comparisons.
	Name string
	// DisplayName is used in replies; falls back to Name when empty.
	DisplayName   string
	IsModerator   bool
	IsBroadcaster bool
}

// Mention returns the @-name used in replies.
func (c Caller) Mention() string {
	if c.DisplayName != "" {
		return "@" + c.DisplayName
	}
	return "@" + c.Name
}

// Tier gates command execution. Tiers are totally ordered.
type Tier int

const (
	Everyone Tier = iota
	Moderator
	Admin
)

func (t Tier) String() string {
	switch t {
	case Everyone:
		return "everyone"
	case Moderator:
		return "moderator"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Evaluator classifies callers into the highest applicable tier.
// Admin status is membership in the static allow-list; moderator status is
// the role flag, the broadcaster badge, or admin membership.
type Evaluator struct {
	admins map[string]struct{}
}

// NewEvaluator builds an evaluator from the admin allow-list. Names are
// case-folded; an empty list means no caller can ever reach Admin.
func NewEvaluator(admins []string) *Evaluator {
	e := &Evaluator{admins: make(map[string]struct{}, len(admins))}
	for _, a := range admins {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			e.admins[a] = struct{}{}
		}
	}
	return e
}

// Classify returns the caller's tier. It has no side effects and no failure mode.
func (e *Evaluator) Classify(c Caller) Tier {
	if e.IsAdmin(c.Name) {
		return Admin
	}
	if c.IsModerator || c.IsBroadcaster {
		return Moderator
	}
	return Everyone
}

// IsAdmin reports allow-list membership for a login name.
func (e *Evaluator) IsAdmin(name string) bool {
	_, ok := e.admins[strings.ToLower(name)]
	return ok
}
