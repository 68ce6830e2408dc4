package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/usecase"
)

type state int

const (
	stateAwaitInstance state = iota
	stateCheckingInstance
	stateAwaitChannel
	stateAwaitPassword
	stateCheckingCredentials
	stateDone
	stateAborted
)

func (s state) checking() bool {
	return s == stateCheckingInstance || s == stateCheckingCredentials
}

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps

	state   state
	input   textinput.Model
	spinner spinner.Model

	report   domain.Report
	instance domain.Instance
	channel  string
	err      error
	toast    string
}

// Run drives the verification wizard until it completes or is aborted.
// The report is returned in both cases.
func Run(ctx context.Context, deps Deps) (domain.Report, error) {
	if deps.Verifier == nil {
		return domain.Report{}, errors.New("tui: Verifier is nil")
	}

	m := newModel(ctx, deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()

	if sm, ok := final.(safeModel); ok {
		m = sm.m
	}
	if err != nil {
		if ctx.Err() != nil {
			return m.report, &domain.OpError{Op: "tui.run", Kind: domain.KindCanceled, Err: ctx.Err()}
		}
		return m.report, err
	}
	return m.report, m.err
}

func newModel(ctx context.Context, deps Deps) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := model{
		ctx:     ctx,
		theme:   DefaultTheme(),
		deps:    deps,
		state:   stateAwaitInstance,
		input:   ti,
		spinner: sp,
		report:  *deps.Verifier.NewReport(),
	}
	if strings.TrimSpace(deps.Instance) != "" {
		m.state = stateCheckingInstance
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateCheckingInstance {
		return tea.Batch(m.spinner.Tick, cmdVerifyInstance(m.ctx, m.deps, m.report, m.deps.Instance))
	}
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state != stateDone && m.state != stateAborted {
				m.state = stateAborted
				m.err = &domain.OpError{Op: "tui.abort", Kind: domain.KindCanceled, Err: context.Canceled}
			}
			return m, tea.Quit

		case "enter":
			return m.submit()
		}

	case instanceCheckedMsg:
		m.report = msg.report
		m.instance = msg.instance
		if msg.err != nil {
			return m.abort(msg.err)
		}
		if ch := strings.TrimSpace(m.deps.Channel); ch != "" {
			if _, err := usecase.CheckChannel(ch); err != nil {
				return m.abort(err)
			}
			m.channel = ch
			return m.askPassword()
		}
		m.state = stateAwaitChannel
		m.input.Reset()
		return m, textinput.Blink

	case credentialsCheckedMsg:
		m.report = msg.report
		if msg.err != nil {
			return m.abort(msg.err)
		}
		m.state = stateDone
		m.report.EndedAt = time.Now()
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.state.checking() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state.checking() || m.state == stateDone || m.state == stateAborted {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.state {
	case stateAwaitInstance:
		m.state = stateCheckingInstance
		m.input.Reset()
		return m, tea.Batch(m.spinner.Tick, cmdVerifyInstance(m.ctx, m.deps, m.report, value))

	case stateAwaitChannel:
		if _, err := usecase.CheckChannel(value); err != nil {
			return m.abort(err)
		}
		m.channel = value
		return m.askPassword()

	case stateAwaitPassword:
		m.state = stateCheckingCredentials
		m.input.Reset()
		return m, tea.Batch(m.spinner.Tick,
			cmdVerifyCredentials(m.ctx, m.deps, m.report, m.instance, m.channel, domain.Secret(value)))
	}
	return m, nil
}

func (m model) askPassword() (tea.Model, tea.Cmd) {
	m.state = stateAwaitPassword
	m.input.Reset()
	m.input.EchoMode = textinput.EchoPassword
	m.input.EchoCharacter = '•'
	return m, textinput.Blink
}

func (m model) abort(err error) (tea.Model, tea.Cmd) {
	m.state = stateAborted
	m.err = err
	m.report.EndedAt = time.Now()
	return m, tea.Quit
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("crosspost") + "\n" +
		m.theme.Subtitle.Render("a Mastodon/Hubzilla cross-poster") + "\n"

	var b strings.Builder
	b.WriteString(renderChecks(m.theme, m.report.Checks))

	switch m.state {
	case stateAwaitInstance:
		b.WriteString(usecase.PromptInstance + "\n" + m.input.View())
	case stateAwaitChannel:
		b.WriteString(usecase.PromptChannel(m.instance) + "\n" + m.input.View())
	case stateAwaitPassword:
		b.WriteString(usecase.PromptPassword + "\n" + m.input.View())
	case stateCheckingInstance:
		b.WriteString(m.spinner.View() + " Checking instance...")
	case stateCheckingCredentials:
		b.WriteString(m.spinner.View() + " Checking credentials...")
	case stateDone:
		b.WriteString("Account verified: " + m.theme.OK.Render(m.report.Account))
	case stateAborted:
		msg, ok := FailureMessage(m.err)
		if !ok && m.err != nil {
			msg = m.err.Error()
		}
		b.WriteString(m.theme.Fail.Render(msg))
	}

	if m.toast != "" {
		b.WriteString("\n\n" + m.theme.Fail.Render(m.toast))
	}

	help := m.theme.Help.Render("enter submit • esc/ctrl+c quit")
	return wrap.Render(header + "\n" + m.theme.Card.Render(b.String()) + "\n" + help)
}

func renderChecks(t Theme, checks []domain.CheckResult) string {
	if len(checks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range checks {
		var tag string
		switch c.Verdict {
		case domain.VerdictConfirmed:
			tag = t.OK.Render("OK  ")
		case domain.VerdictInconclusive:
			tag = t.Warn.Render("WARN")
		default:
			tag = t.Fail.Render("FAIL")
		}
		line := fmt.Sprintf("%s %-12s %dms", tag, c.Stage, c.LatencyMS)
		if c.Detail != "" && c.Verdict != domain.VerdictConfirmed {
			line += " " + t.Help.Render(clampString(c.Detail, 60))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
