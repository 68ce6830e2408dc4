package tui

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// Commands run on their own goroutine, so they work on a copy of the report
// and hand it back in the message.
func cloneReport(r domain.Report) domain.Report {
	r.Checks = slices.Clone(r.Checks)
	return r
}

func cmdVerifyInstance(ctx context.Context, deps Deps, report domain.Report, raw string) tea.Cmd {
	return func() tea.Msg {
		r := cloneReport(report)
		instance, err := deps.Verifier.VerifyInstance(ctx, &r, raw)
		return instanceCheckedMsg{report: r, instance: instance, err: err}
	}
}

func cmdVerifyCredentials(ctx context.Context, deps Deps, report domain.Report, instance domain.Instance, channel string, password domain.Secret) tea.Cmd {
	return func() tea.Msg {
		r := cloneReport(report)
		_, err := deps.Verifier.VerifyCredentials(ctx, &r, instance, channel, password)
		return credentialsCheckedMsg{report: r, err: err}
	}
}
