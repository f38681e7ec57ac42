package utils

import "testing"

func TestRoleARN(t *testing.T) {
	got := RoleARN("123456789012", "OrgAdminRole")
	want := "arn:aws:iam::123456789012:role/OrgAdminRole"
	if got != want {
		t.Errorf("RoleARN = %s, want %s", got, want)
	}
}

func TestRootPrincipalARN(t *testing.T) {
	got := RootPrincipalARN("123456789012")
	want := "arn:aws:iam::123456789012:root"
	if got != want {
		t.Errorf("RootPrincipalARN = %s, want %s", got, want)
	}
}

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"arn:aws:iam::123456789012:role/OrgAdminRole", "OrgAdminRole"},
		{"arn:aws:sts::123456789012:assumed-role/OrgAdminRole/session", "session"},
		{"no-slashes", "no-slashes"},
	}
	for _, tt := range tests {
		if got := ShortName(tt.in); got != tt.want {
			t.Errorf("ShortName(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
