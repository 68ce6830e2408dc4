package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestVerdictPasses(t *testing.T) {
	cases := []struct {
		v    Verdict
		want bool
	}{
		{VerdictConfirmed, true},
		{VerdictInconclusive, true},
		{VerdictDenied, false},
		{Verdict(""), false},
	}
	for _, c := range cases {
		if got := c.v.Passes(); got != c.want {
			t.Errorf("%q.Passes() = %v, want %v", c.v, got, c.want)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestNewProbeErrorClassifies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ProbeErrorKind
	}{
		{"canceled", fmt.Errorf("get: %w", context.Canceled), ProbeErrorCancel},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ProbeErrorTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.invalid"}, ProbeErrorDNS},
		{"net timeout", fmt.Errorf("read: %w", timeoutErr{}), ProbeErrorTimeout},
		{"conn", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ProbeErrorConn},
		{"tls", errors.New("remote error: tls: handshake failure"), ProbeErrorTLS},
		{"unknown", errors.New("boom"), ProbeErrorUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pe := NewProbeError(c.err)
			if pe == nil {
				t.Fatalf("expected probe error")
			}
			if pe.Kind != c.want {
				t.Fatalf("expected kind %s, got %s", c.want, pe.Kind)
			}
			if pe.Message == "" {
				t.Fatalf("expected message")
			}
		})
	}

	if NewProbeError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
