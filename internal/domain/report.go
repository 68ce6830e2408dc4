package domain

import "time"

// Report is the outcome of one verification run.
type Report struct {
	ID       string
	Instance Instance

	// Account is the composite identifier; empty unless every check passed.
	Account string

	StartedAt time.Time
	EndedAt   time.Time

	Checks []CheckResult
}

// Add appends a check result.
func (r *Report) Add(c CheckResult) {
	r.Checks = append(r.Checks, c)
}

// Complete reports whether all three stages ran and passed.
func (r Report) Complete() bool {
	if r.Account == "" {
		return false
	}
	seen := map[Stage]bool{}
	for _, c := range r.Checks {
		if !c.Verdict.Passes() {
			return false
		}
		seen[c.Stage] = true
	}
	return seen[StageHostMeta] && seen[StageNodeInfo] && seen[StageCredentials]
}
