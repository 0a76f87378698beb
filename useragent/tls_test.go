package useragent

import (
	"context"
	"testing"

	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/testutil"
	"github.com/kbukum/chatkit/testutil/chatapi"
	"github.com/kbukum/chatkit/testutil/tlstest"
)

func TestRunOverTLS(t *testing.T) {
	certs := tlstest.Generate(t)
	srv := chatapi.New(chatapi.Config{TLS: certs})
	testutil.T(t).Setup(srv)
	srv.AddChannel("1")

	tests := []struct {
		name    string
		tls     *TLSConfig
		wantErr bool
	}{
		{"trusted CA file", &TLSConfig{CAFile: certs.CAFile}, false},
		{"skip verify", &TLSConfig{SkipVerify: true}, false},
		{"system roots only", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ua, err := New(Config{BaseURL: srv.URL(), TLS: tc.tls}, WithLogger(logger.Nop()))
			if err != nil {
				t.Fatal(err)
			}
			defer ua.Close()

			err = ua.Run(context.Background(), &Info{}, nil, nil, MethodGet, "/channels/%d/messages", 1)
			if tc.wantErr {
				if !IsTransport(err) {
					t.Errorf("expected transport error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Run: %v", err)
			}
		})
	}
}

func TestTLSConfigClientCertificate(t *testing.T) {
	certs := tlstest.Generate(t)

	cfg, err := (&TLSConfig{CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile}).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Certificates) != 1 || cfg.RootCAs == nil {
		t.Errorf("client certificate or roots missing: %d certs", len(cfg.Certificates))
	}

	if _, err := (&TLSConfig{CAFile: tlstest.WriteInvalidPEM(t)}).Build(); err == nil {
		t.Error("expected error for a CA file without certificates")
	}
}
