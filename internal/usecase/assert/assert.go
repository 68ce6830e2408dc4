package assert

import (
	"fmt"
	"slices"
	"strings"
)

// Result is the outcome of a single assertion.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

func Status(expected int, got int) Result {
	if got == expected {
		return Result{
			Name:    "status",
			Passed:  true,
			Message: fmt.Sprintf("status %d", got),
		}
	}

	return Result{
		Name:    "status",
		Passed:  false,
		Message: fmt.Sprintf("expected status %d, got %d", expected, got),
	}
}

// OneOf passes when got exactly matches one of allowed. Matching is
// case-sensitive.
func OneOf(name string, got string, allowed []string) Result {
	if slices.Contains(allowed, got) {
		return Result{
			Name:    name,
			Passed:  true,
			Message: fmt.Sprintf("%s %q", name, got),
		}
	}

	return Result{
		Name:    name,
		Passed:  false,
		Message: fmt.Sprintf("expected %s in [%s], got %q", name, strings.Join(allowed, ", "), got),
	}
}
