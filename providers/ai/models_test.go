package ai

import "testing"

// TestNormalizeRole_CollapsesNonUserRoles verifies the binary role mapping
// used by the wire conversions: user stays user, everything else becomes
// assistant.
func TestNormalizeRole_CollapsesNonUserRoles(t *testing.T) {
	cases := []struct {
		in   MessageRole
		want MessageRole
	}{
		{RoleUser, RoleUser},
		{RoleAssistant, RoleAssistant},
		{RoleSystem, RoleAssistant},
		{MessageRole(""), RoleAssistant},
		{MessageRole("tool"), RoleAssistant},
	}

	for _, tc := range cases {
		if got := NormalizeRole(tc.in); got != tc.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
