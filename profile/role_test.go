package profile

import (
	"testing"

	"mestero/models"
)

func TestLookupRoleFallsBackToClient(t *testing.T) {
	// An unidentified caller never resolves to a provider role.
	if got := LookupRole(""); got != models.UserTypeClient {
		t.Errorf("expected CLIENT fallback, got %q", got)
	}
}

func TestRoleFromDoc(t *testing.T) {
	if roleFromDoc(nil) != models.UserTypeClient {
		t.Error("missing user doc should resolve to CLIENT")
	}
	if roleFromDoc(map[string]any{"userType": "PROVIDER"}) != models.UserTypeProvider {
		t.Error("provider doc should resolve to PROVIDER")
	}
	if roleFromDoc(map[string]any{"userType": "gibberish"}) != models.UserTypeClient {
		t.Error("unparseable role should resolve to CLIENT")
	}
}

func TestRoleKey(t *testing.T) {
	if roleKey("u1") != "role:u1" {
		t.Errorf("unexpected cache key %q", roleKey("u1"))
	}
}
