package domain

import (
	"log/slog"
	"strings"
)

// Instance is a bare instance domain: no scheme, no path.
type Instance string

// Channel is a Hubzilla channel (account) name without a leading "@".
type Channel string

// AccountType identifies the platform an account belongs to.
type AccountType int

const (
	AccountMastodon AccountType = 0
	AccountHubzilla AccountType = 1
)

func (t AccountType) String() string {
	switch t {
	case AccountMastodon:
		return "mastodon"
	case AccountHubzilla:
		return "hubzilla"
	default:
		return "unknown"
	}
}

// Secret holds a password for the lifetime of one verification run.
// It never renders its value through fmt or slog.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "******"
}

func (s Secret) GoString() string { return s.String() }

// LogValue masks the secret in structured logs.
func (s Secret) LogValue() slog.Value { return slog.StringValue(s.String()) }

// Reveal returns the raw value. Only transport code should call it.
func (s Secret) Reveal() string { return string(s) }

// SanitizeInstance strips an http:// or https:// prefix and everything from
// the first "/" onwards.
func SanitizeInstance(raw string) Instance {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "https://"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "http://"); ok {
		s = rest
	}
	s, _, _ = strings.Cut(s, "/")
	return Instance(s)
}

// SanitizeChannel strips a single leading "@".
func SanitizeChannel(raw string) Channel {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	return Channel(s)
}

// AccountDraft is the short-lived record handed from one verification step
// to the next.
type AccountDraft struct {
	Type     AccountType
	Instance Instance
	Channel  Channel
	Password Secret
}

// Handle returns the composite identifier "@channel@instance".
func (a AccountDraft) Handle() string {
	return "@" + string(a.Channel) + "@" + string(a.Instance)
}

func (a AccountDraft) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", a.Type.String()),
		slog.String("instance", string(a.Instance)),
		slog.String("channel", string(a.Channel)),
		slog.Any("password", a.Password),
	)
}
