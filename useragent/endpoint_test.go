package useragent

import (
	"context"
	"strings"
	"testing"
)

func TestRenderEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		args     []any
		want     string
		wantErr  bool
	}{
		{"plain", "/channels/%d/messages", []any{42}, "/channels/42/messages", false},
		{"percent bang in string", "/search?q=%s", []any{"50%!"}, "/search?q=50%!", false},
		{"marker text in string", "/search?q=%s", []any{"%!d(string=x)"}, "/search?q=%!d(string=x)", false},
		{"extra marker text in bytes", "/search?q=%s", []any{[]byte("%!(EXTRA int=1)")}, "/search?q=%!(EXTRA int=1)", false},
		{"missing argument", "/channels/%d", nil, "", true},
		{"extra argument", "/channels", []any{1}, "", true},
		{"wrong verb", "/channels/%d", []any{"abc"}, "", true},
		{"wrong verb with marker text", "/channels/%d/%s", []any{"abc", "%!"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderEndpoint(tt.endpoint, tt.args)
			if tt.wantErr {
				if !IsPrecondition(err) {
					t.Fatalf("expected precondition error, got %q, %v", got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("renderEndpoint: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunArgumentContainingPercentBang(t *testing.T) {
	srv := startAPI(t)
	ua := newUA(t, srv, nil)

	var info Info
	if err := ua.Run(context.Background(), &info, nil, nil, MethodGet, "/echo-headers?q=%s", "50%!"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasSuffix(info.ReqURL, "/echo-headers?q=50%!") {
		t.Errorf("ReqURL = %q", info.ReqURL)
	}
	if info.HTTPCode != 200 {
		t.Errorf("HTTPCode = %d", info.HTTPCode)
	}
}
