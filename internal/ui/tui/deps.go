package tui

import (
	"log/slog"

	"github.com/aalvaropc/crosspost/internal/usecase"
)

type Deps struct {
	Verifier *usecase.VerifyAccount
	Logger   *slog.Logger

	// Instance and Channel pre-fill the wizard; empty values are asked for.
	Instance string
	Channel  string
}
