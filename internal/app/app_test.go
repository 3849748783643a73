package app

import (
	"testing"

	"github.com/google/uuid"

	"github.com/atvouzx/dapur/internal/prefs"
)

func TestResolveUser_Precedence(t *testing.T) {
	p := prefs.Prefs{UserIdentifier: "stored"}

	if got, gen := resolveUser(" flag ", "config", &p); got != "flag" || gen {
		t.Fatalf("resolveUser(flag) = %q, %v; want flag, false", got, gen)
	}
	if got, gen := resolveUser("", "config", &p); got != "config" || gen {
		t.Fatalf("resolveUser(config) = %q, %v; want config, false", got, gen)
	}
	if got, gen := resolveUser("", " ", &p); got != "stored" || gen {
		t.Fatalf("resolveUser(prefs) = %q, %v; want stored, false", got, gen)
	}
}

func TestResolveUser_GeneratesWhenMissing(t *testing.T) {
	var p prefs.Prefs

	got, gen := resolveUser("", "", &p)
	if !gen {
		t.Fatalf("resolveUser generated = false, want true")
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("generated identifier %q is not a uuid: %v", got, err)
	}
	if p.UserIdentifier != got {
		t.Fatalf("prefs identifier = %q, want %q", p.UserIdentifier, got)
	}
}
