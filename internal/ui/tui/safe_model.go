package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// safeModel keeps a panic inside the wizard from leaving the terminal in alt
// screen. A recovered panic aborts the run; the report collected so far is
// still returned by Run.
type safeModel struct {
	m   model
	log *slog.Logger

	// update is model.Update; tests replace it.
	update func(model, tea.Msg) (tea.Model, tea.Cmd)
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log, update: model.Update}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tui.panic",
				"state", s.m.state,
				"report_id", s.m.report.ID,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)

			aborted, quit := s.m.abort(&domain.OpError{
				Op:   "tui.update",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("panic: %v", r),
			})
			s.m = aborted.(model)
			s.m.toast = "Unexpected error (see logs)"
			tm, cmd = s, quit
		}
	}()

	inner, c := s.update(s.m, msg)
	if mm, ok := inner.(model); ok {
		s.m = mm
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("tui.panic", "state", s.m.state, "where", "view", "panic", fmt.Sprint(r))
			out = "Unexpected error (see logs)"
		}
	}()
	return s.m.View()
}

var _ tea.Model = safeModel{}
