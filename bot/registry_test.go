package bot

import (
	"context"
	"testing"
)

func noop(context.Context, *Invocation) Outcome { return NoReply }

func TestRegistryLookupPrecedence(t *testing.T) {
	r := NewRegistry()
	r.Register(Admin, "!shutdown", noop)
	r.Register(Moderator, "!ban", noop)
	r.Register(Everyone, "!dice", noop)

	tests := []struct {
		token string
		tier  Tier
		found bool
	}{
		{"!shutdown", Admin, true},
		{"!SHUTDOWN", Admin, true},
		{"!ban", Moderator, true},
		{"!dice", Everyone, true},
		{"!nope", Everyone, false},
	}
	for _, tt := range tests {
		fn, tier, ok := r.Lookup(tt.token)
		if ok != tt.found {
			t.Errorf("Lookup(%q) found = %v, want %v", tt.token, ok, tt.found)
			continue
		}
		if !ok {
			continue
		}
		if tier != tt.tier {
			t.Errorf("Lookup(%q) tier = %v, want %v", tt.token, tier, tt.tier)
		}
		if fn == nil {
			t.Errorf("Lookup(%q) returned nil handler", tt.token)
		}
	}
}

func TestRegisterRejectsDuplicateAcrossTiers(t *testing.T) {
	r := NewRegistry()
	r.Register(Everyone, "!dice", noop)
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic registering duplicate token in another tier")
		}
	}()
	r.Register(Admin, "!dice", noop)
}

func TestRegisterRejectsMissingSigil(t *testing.T) {
	r := NewRegistry()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic registering token without sigil")
		}
	}()
	r.Register(Everyone, "dice", noop)
}

func TestRegistryLen(t *testing.T) {
	r := NewRegistry()
	r.Register(Admin, "!a", noop)
	r.Register(Moderator, "!b", noop)
	r.Register(Everyone, "!c", noop)
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}
