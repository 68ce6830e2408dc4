package tui

import (
	"errors"
	"strings"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// FailureMessage returns the one-line cause for an error raised by the
// verification sequence. ok is false for anything else.
func FailureMessage(err error) (msg string, ok bool) {
	var oe *domain.OpError
	if err == nil || !errors.As(err, &oe) {
		return "", false
	}

	stage, _ := domain.StageOf(err)

	switch oe.Kind {
	case domain.KindCanceled:
		return "Interrupted. Bailing...", true

	case domain.KindUnreachable:
		if stage == domain.StageNodeInfo {
			return "Nodeinfo could not be read from the instance. Bailing...", true
		}
		return "Instance returned error upon validation. Something's amiss with the instance. Bailing...", true

	case domain.KindIdentityMismatch:
		return "Nodeinfo claims this isn't a Hubzilla instance. Bailing...", true

	case domain.KindUnauthorized:
		return "Authorization attempt failed. Bailing...", true

	case domain.KindInvalidInput:
		switch {
		case stage == domain.StageCredentials:
			return "Channel name is empty. Bailing...", true
		case strings.HasPrefix(oe.Op, "verify.prompt"):
			return "No input received. Bailing...", true
		case strings.HasPrefix(oe.Op, "verify."):
			return "Instance domain is empty. Bailing...", true
		}
	}
	return "", false
}
