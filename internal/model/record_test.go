package model

import "testing"

func TestIsLogin(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "jwt login request",
			rec:  Record{Type: "request", Request: Request{Path: "auth/jwt/login"}},
			want: true,
		},
		{
			name: "role login request",
			rec:  Record{Type: "request", Request: Request{Path: "auth/approle/login/my-role"}},
			want: true,
		},
		{
			name: "login response not counted",
			rec:  Record{Type: "response", Request: Request{Path: "auth/jwt/login"}},
			want: false,
		},
		{
			name: "non-auth path",
			rec:  Record{Type: "request", Request: Request{Path: "secret/data/login"}},
			want: false,
		},
		{
			name: "auth path without login",
			rec:  Record{Type: "request", Request: Request{Path: "auth/token/lookup"}},
			want: false,
		},
	}

	for _, tt := range tests {
		if got := tt.rec.IsLogin(); got != tt.want {
			t.Errorf("%s: IsLogin() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMountKey(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Record{Request: Request{MountPoint: "auth/jwt/"}}, "auth/jwt/"},
		{Record{Request: Request{Path: "auth/jwt/login"}}, "auth/jwt/"},
		{Record{Request: Request{Path: "secret/data/app"}}, "secret/data/"},
		{Record{Request: Request{Path: "sys"}}, "sys"},
	}
	for _, tt := range tests {
		if got := tt.rec.MountKey(); got != tt.want {
			t.Errorf("MountKey(%+v) = %q, want %q", tt.rec.Request, got, tt.want)
		}
	}
}

func TestNamePrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ci-runner:build-1234", "ci-runner"},
		{"alice", "alice"},
		{":odd", ":odd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NamePrefix(tt.in); got != tt.want {
			t.Errorf("NamePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
