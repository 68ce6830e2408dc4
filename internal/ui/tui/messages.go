package tui

import "github.com/aalvaropc/crosspost/internal/domain"

type instanceCheckedMsg struct {
	report   domain.Report
	instance domain.Instance
	err      error
}

type credentialsCheckedMsg struct {
	report domain.Report
	err    error
}
