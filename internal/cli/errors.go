package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/ui/tui"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns err into the single line printed before exiting.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := tui.FailureMessage(err); ok {
		return msg
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		if looksLikeYAMLProblem(err.Error()) {
			if line := extractLine(err.Error()); line != "" {
				return "Invalid YAML line " + line
			}
			return "Invalid YAML"
		}
		return err.Error()
	}

	switch oe.Kind {
	case domain.KindInvalidInput:
		if oe.Err != nil {
			return "Invalid input: " + oe.Err.Error()
		}
		return "Invalid input"

	case domain.KindNotFound:
		if oe.Path != "" {
			return "Config not found: " + oe.Path
		}
		return "Not found"

	case domain.KindInvalidConfig:
		base := "config"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML at " + base + " line " + line
		}
		if looksLikeYAMLProblem(err.Error()) {
			return "Invalid YAML at " + base
		}
		if oe.Err != nil {
			return "Invalid config at " + base + ": " + oe.Err.Error()
		}
		return "Invalid config at " + base

	default:
		return "Unexpected error (see logs)"
	}
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
