package domain

import "testing"

func TestReportComplete(t *testing.T) {
	r := Report{Instance: "example.com"}
	if r.Complete() {
		t.Fatalf("empty report must not be complete")
	}

	r.Add(CheckResult{Stage: StageHostMeta, Verdict: VerdictConfirmed})
	r.Add(CheckResult{Stage: StageNodeInfo, Verdict: VerdictInconclusive})
	if r.Complete() {
		t.Fatalf("report without credentials stage must not be complete")
	}

	r.Add(CheckResult{Stage: StageCredentials, Verdict: VerdictConfirmed})
	if r.Complete() {
		t.Fatalf("report without account must not be complete")
	}

	r.Account = "@alice@example.com"
	if !r.Complete() {
		t.Fatalf("expected complete report")
	}
}

func TestReportIncompleteOnDenied(t *testing.T) {
	r := Report{Account: "@alice@example.com"}
	r.Add(CheckResult{Stage: StageHostMeta, Verdict: VerdictConfirmed})
	r.Add(CheckResult{Stage: StageNodeInfo, Verdict: VerdictDenied})
	r.Add(CheckResult{Stage: StageCredentials, Verdict: VerdictConfirmed})
	if r.Complete() {
		t.Fatalf("denied check must make the report incomplete")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HTTP.Timeout <= 0 || cfg.HTTP.MaxBodyBytes <= 0 {
		t.Fatalf("expected positive http defaults")
	}
	if len(cfg.Hubzilla.SoftwareNames) != 2 {
		t.Fatalf("expected two recognized software names, got %v", cfg.Hubzilla.SoftwareNames)
	}
}
