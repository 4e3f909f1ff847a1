package webhook

import (
	"errors"
	"net"
	"testing"
)

func mustParseIP(t *testing.T, addr string) net.IP {
	t.Helper()
	ip := net.ParseIP(addr)
	if ip == nil {
		t.Fatalf("bad test IP %q", addr)
	}
	return ip
}

func TestValidateTargetURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"plain http", "http://hooks.example.com/receive", ErrInvalidScheme},
		{"no host", "https://", ErrEmptyHost},
		{"localhost", "https://localhost/receive", ErrLocalhostBlocked},
		{"localhost subdomain", "https://api.localhost/receive", ErrLocalhostBlocked},
		{"mdns suffix", "https://printer.local/receive", ErrLocalhostBlocked},
		{"loopback literal", "https://127.0.0.1/receive", ErrLocalhostBlocked},
		{"custom port", "https://hooks.example.com:8443/receive", ErrInvalidPort},
		{"garbage", "https://exa mple.com", ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTargetURL(tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTargetURL(%q) = %v, want %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsBlockedIPRanges(t *testing.T) {
	t.Parallel()

	blocked := []string{"10.1.2.3", "172.16.0.1", "192.168.1.1", "127.0.0.1", "169.254.1.1"}
	for _, addr := range blocked {
		if !isBlockedIP(mustParseIP(t, addr)) {
			t.Errorf("%s should be blocked", addr)
		}
	}

	allowed := []string{"8.8.8.8", "1.1.1.1", "93.184.216.34"}
	for _, addr := range allowed {
		if isBlockedIP(mustParseIP(t, addr)) {
			t.Errorf("%s should be allowed", addr)
		}
	}
}

func TestExtractHost(t *testing.T) {
	t.Parallel()

	if got := ExtractHost("https://hooks.example.com/secret-path?token=x"); got != "hooks.example.com" {
		t.Errorf("ExtractHost() = %q", got)
	}
}
