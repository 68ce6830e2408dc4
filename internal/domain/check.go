package domain

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"strings"
)

// Stage names one step of the verification sequence.
type Stage string

const (
	StageHostMeta    Stage = "host_meta"
	StageNodeInfo    Stage = "nodeinfo"
	StageCredentials Stage = "credentials"
)

// Verdict is the three-valued outcome of a single check.
type Verdict string

const (
	VerdictConfirmed    Verdict = "confirmed"
	VerdictDenied       Verdict = "denied"
	VerdictInconclusive Verdict = "inconclusive"
)

// Passes reports whether the verdict lets the sequence continue.
// Inconclusive counts as a pass.
func (v Verdict) Passes() bool {
	return v == VerdictConfirmed || v == VerdictInconclusive
}

// ProbeErrorKind is a high-level classification of transport errors.
type ProbeErrorKind string

const (
	ProbeErrorUnknown ProbeErrorKind = "unknown"
	ProbeErrorTimeout ProbeErrorKind = "timeout"
	ProbeErrorDNS     ProbeErrorKind = "dns"
	ProbeErrorConn    ProbeErrorKind = "connection"
	ProbeErrorTLS     ProbeErrorKind = "tls"
	ProbeErrorCancel  ProbeErrorKind = "canceled"
)

// ProbeError is a transport failure observed while running a check.
type ProbeError struct {
	Kind    ProbeErrorKind
	Message string
}

// NewProbeError classifies err. It returns nil for a nil error.
func NewProbeError(err error) *ProbeError {
	if err == nil {
		return nil
	}
	return &ProbeError{Kind: classify(err), Message: err.Error()}
}

func classify(err error) ProbeErrorKind {
	if errors.Is(err, context.Canceled) {
		return ProbeErrorCancel
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ProbeErrorTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ProbeErrorDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ProbeErrorTimeout
	}

	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var certErr x509.CertificateInvalidError
	if errors.As(err, &unknownAuth) || errors.As(err, &hostErr) || errors.As(err, &certErr) {
		return ProbeErrorTLS
	}
	if strings.Contains(strings.ToLower(err.Error()), "tls:") {
		return ProbeErrorTLS
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ProbeErrorConn
	}
	return ProbeErrorUnknown
}

// CheckResult is what a single check observed and concluded.
type CheckResult struct {
	Stage      Stage
	URL        string
	Verdict    Verdict
	StatusCode int
	LatencyMS  int64
	Detail     string

	// Reason classifies a denied verdict.
	Reason ErrorKind

	// Software and Version are set by the nodeinfo check when present.
	Software string
	Version  string

	Error *ProbeError
}

// ProbeRequest describes one outbound HTTP probe.
type ProbeRequest struct {
	Method  string
	URL     string
	Query   map[string]string
	Headers map[string]string
}
