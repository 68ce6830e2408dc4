package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/crosspost/internal/domain"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func validFormat(f string) error {
	switch f {
	case formatPretty, formatJSON:
		return nil
	default:
		return &domain.OpError{
			Op:   "cli.format",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("unknown format %q (want %s or %s)", f, formatPretty, formatJSON),
		}
	}
}

func printBanner(w io.Writer) {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	faint := r.NewStyle().Faint(true)
	fmt.Fprintln(w, title.Render("crosspost - a Mastodon/Hubzilla cross-poster"))
	fmt.Fprintln(w, faint.Render(strings.Repeat("-", 44)))
	fmt.Fprintln(w)
}

func printReport(w io.Writer, report domain.Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toReportDTO(report))
	case formatPretty:
		printPretty(w, report)
		return nil
	default:
		return validFormat(format)
	}
}

func printPretty(w io.Writer, report domain.Report) {
	r := lipgloss.NewRenderer(w)
	ok := r.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	warn := r.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	fail := r.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	faint := r.NewStyle().Faint(true)

	for _, c := range report.Checks {
		var tag string
		switch c.Verdict {
		case domain.VerdictConfirmed:
			tag = ok.Render("OK  ")
		case domain.VerdictInconclusive:
			tag = warn.Render("WARN")
		default:
			tag = fail.Render("FAIL")
		}

		line := fmt.Sprintf("%s %-12s", tag, c.Stage)
		if c.StatusCode > 0 {
			line += fmt.Sprintf(" status=%d", c.StatusCode)
		}
		line += fmt.Sprintf(" %dms", c.LatencyMS)
		if c.Software != "" {
			sw := c.Software
			if c.Version != "" {
				sw += " " + c.Version
			}
			line += " software=" + sw
		}
		fmt.Fprintln(w, line)

		if c.Error != nil {
			fmt.Fprintln(w, faint.Render(fmt.Sprintf("     %s: %s", c.Error.Kind, c.Error.Message)))
		} else if c.Detail != "" && c.Verdict != domain.VerdictConfirmed {
			fmt.Fprintln(w, faint.Render("     "+c.Detail))
		}
	}

	if report.Account != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Account verified: "+ok.Render(report.Account))
	}
}

type reportDTO struct {
	RunID     string     `json:"run_id"`
	Instance  string     `json:"instance"`
	Account   string     `json:"account,omitempty"`
	Complete  bool       `json:"complete"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   time.Time  `json:"ended_at"`
	Checks    []checkDTO `json:"checks"`
}

type checkDTO struct {
	Stage      string    `json:"stage"`
	URL        string    `json:"url"`
	Verdict    string    `json:"verdict"`
	StatusCode int       `json:"status_code,omitempty"`
	LatencyMS  int64     `json:"latency_ms"`
	Detail     string    `json:"detail,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Software   string    `json:"software,omitempty"`
	Version    string    `json:"version,omitempty"`
	Error      *errorDTO `json:"error,omitempty"`
}

type errorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func toReportDTO(r domain.Report) reportDTO {
	out := reportDTO{
		RunID:     r.ID,
		Instance:  string(r.Instance),
		Account:   r.Account,
		Complete:  r.Complete(),
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
		Checks:    make([]checkDTO, 0, len(r.Checks)),
	}
	for _, c := range r.Checks {
		dto := checkDTO{
			Stage:      string(c.Stage),
			URL:        c.URL,
			Verdict:    string(c.Verdict),
			StatusCode: c.StatusCode,
			LatencyMS:  c.LatencyMS,
			Detail:     c.Detail,
			Reason:     string(c.Reason),
			Software:   c.Software,
			Version:    c.Version,
		}
		if c.Error != nil {
			dto.Error = &errorDTO{Kind: string(c.Error.Kind), Message: c.Error.Message}
		}
		out.Checks = append(out.Checks, dto)
	}
	return out
}
