package websocket

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantScheme scheme
		wantDial   string
		wantPath   string
		wantErr    error
	}{
		{name: "plain default port", url: "ws://example.com/chat", wantScheme: schemePlain, wantDial: "example.com:80", wantPath: "/chat"},
		{name: "secure default port", url: "wss://example.com/chat", wantScheme: schemeSecure, wantDial: "example.com:443", wantPath: "/chat"},
		{name: "explicit port", url: "ws://example.com:9000/", wantScheme: schemePlain, wantDial: "example.com:9000", wantPath: "/"},
		{name: "no path", url: "ws://example.com", wantScheme: schemePlain, wantDial: "example.com:80", wantPath: "/"},
		{name: "bad scheme", url: "http://example.com", wantErr: ErrScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := parseAddress(tt.url)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseAddress() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAddress() error = %v", err)
			}
			if addr.scheme != tt.wantScheme {
				t.Errorf("scheme = %v, want %v", addr.scheme, tt.wantScheme)
			}
			if addr.dial != tt.wantDial {
				t.Errorf("dial = %q, want %q", addr.dial, tt.wantDial)
			}
			if addr.path != tt.wantPath {
				t.Errorf("path = %q, want %q", addr.path, tt.wantPath)
			}
		})
	}
}
