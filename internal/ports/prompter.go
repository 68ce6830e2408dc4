package ports

import (
	"context"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// Prompter asks the user for input.
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
	// AskSecret reads a value without echoing it.
	AskSecret(ctx context.Context, label string) (domain.Secret, error)
}
