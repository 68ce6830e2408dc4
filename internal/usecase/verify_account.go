package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/ports"
)

// VerifyAccount runs host-meta, nodeinfo and credential checks in order and
// stops at the first failure. It never exits the process; callers decide.
type VerifyAccount struct {
	prober ports.InstanceProber
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
}

type VerifyOption func(*VerifyAccount)

func WithLogger(log *slog.Logger) VerifyOption {
	return func(uc *VerifyAccount) {
		if log != nil {
			uc.log = log
		}
	}
}

// WithClock overrides the clock (useful for tests).
func WithClock(now func() time.Time) VerifyOption {
	return func(uc *VerifyAccount) { uc.now = now }
}

// WithIDGenerator overrides report ID generation (useful for tests).
func WithIDGenerator(gen func() string) VerifyOption {
	return func(uc *VerifyAccount) { uc.newID = gen }
}

func NewVerifyAccount(prober ports.InstanceProber, opts ...VerifyOption) *VerifyAccount {
	uc := &VerifyAccount{
		prober: prober,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Prompt labels shared by the line prompter and the TUI.
const (
	PromptInstance = "Please enter your instance's domain (i.e. example.com): "
	PromptPassword = "Enter your password: "
)

// PromptChannel is the channel prompt for instance.
func PromptChannel(instance domain.Instance) string {
	return "Please enter your channel name (this is what goes before @" + string(instance) + "): "
}

// VerifyInput carries values already known before prompting (flags, stdin).
// Empty fields are asked for.
type VerifyInput struct {
	Instance string
	Channel  string
	Password domain.Secret
}

// NewReport starts an empty report.
func (uc *VerifyAccount) NewReport() *domain.Report {
	return &domain.Report{
		ID:        uc.newID(),
		StartedAt: uc.now(),
	}
}

// Execute drives the full sequence, asking p for any value missing from in.
// The report is returned even when a check fails.
func (uc *VerifyAccount) Execute(ctx context.Context, in VerifyInput, p ports.Prompter) (domain.Report, error) {
	report := uc.NewReport()
	err := uc.execute(ctx, report, in, p)
	report.EndedAt = uc.now()
	return *report, err
}

func (uc *VerifyAccount) execute(ctx context.Context, report *domain.Report, in VerifyInput, p ports.Prompter) error {
	rawInstance := in.Instance
	if rawInstance == "" {
		v, err := p.Ask(ctx, PromptInstance)
		if err != nil {
			return promptError("verify.prompt_instance", err)
		}
		rawInstance = v
	}

	instance, err := uc.VerifyInstance(ctx, report, rawInstance)
	if err != nil {
		return err
	}

	rawChannel := in.Channel
	if rawChannel == "" {
		v, err := p.Ask(ctx, PromptChannel(instance))
		if err != nil {
			return promptError("verify.prompt_channel", err)
		}
		rawChannel = v
	}
	if _, err := CheckChannel(rawChannel); err != nil {
		return err
	}

	password := in.Password
	if password == "" {
		v, err := p.AskSecret(ctx, PromptPassword)
		if err != nil {
			return promptError("verify.prompt_password", err)
		}
		password = v
	}

	_, err = uc.VerifyCredentials(ctx, report, instance, rawChannel, password)
	return err
}

// CheckChannel sanitizes raw and rejects an empty result, so callers can
// refuse a channel before asking for the password.
func CheckChannel(raw string) (domain.Channel, error) {
	channel := domain.SanitizeChannel(raw)
	if channel == "" {
		return "", &domain.OpError{
			Op:    "verify.channel",
			Kind:  domain.KindInvalidInput,
			Stage: domain.StageCredentials,
			Err:   errors.New("channel name is empty"),
		}
	}
	return channel, nil
}

// Probe runs only the instance checks, without asking for credentials.
func (uc *VerifyAccount) Probe(ctx context.Context, raw string) (domain.Report, error) {
	report := uc.NewReport()
	_, err := uc.VerifyInstance(ctx, report, raw)
	report.EndedAt = uc.now()
	return *report, err
}

// VerifyInstance sanitizes raw and runs the host-meta and nodeinfo checks.
func (uc *VerifyAccount) VerifyInstance(ctx context.Context, report *domain.Report, raw string) (domain.Instance, error) {
	instance := domain.SanitizeInstance(raw)
	report.Instance = instance
	if instance == "" {
		return "", &domain.OpError{
			Op:   "verify.instance",
			Kind: domain.KindInvalidInput,
			Err:  errors.New("instance domain is empty"),
		}
	}

	log := uc.log.With("instance", string(instance), "report_id", report.ID)

	if err := uc.run(ctx, log, report, domain.StageHostMeta, func() (domain.CheckResult, error) {
		return uc.prober.HostMeta(ctx, instance)
	}); err != nil {
		return instance, err
	}

	if err := uc.run(ctx, log, report, domain.StageNodeInfo, func() (domain.CheckResult, error) {
		return uc.prober.NodeInfo(ctx, instance)
	}); err != nil {
		return instance, err
	}

	return instance, nil
}

// VerifyCredentials sanitizes rawChannel, runs the credential check and, on
// success, records the composite identifier on report.
func (uc *VerifyAccount) VerifyCredentials(ctx context.Context, report *domain.Report, instance domain.Instance, rawChannel string, password domain.Secret) (domain.AccountDraft, error) {
	channel, err := CheckChannel(rawChannel)
	draft := domain.AccountDraft{
		Type:     domain.AccountHubzilla,
		Instance: instance,
		Channel:  channel,
		Password: password,
	}
	if err != nil {
		return draft, err
	}

	log := uc.log.With("report_id", report.ID, "account", draft)

	if err := uc.run(ctx, log, report, domain.StageCredentials, func() (domain.CheckResult, error) {
		return uc.prober.Credentials(ctx, draft)
	}); err != nil {
		return draft, err
	}

	report.Account = draft.Handle()
	log.Info("verify.complete", "handle", report.Account)
	return draft, nil
}

func (uc *VerifyAccount) run(ctx context.Context, log *slog.Logger, report *domain.Report, stage domain.Stage, check func() (domain.CheckResult, error)) error {
	if err := ctx.Err(); err != nil {
		return &domain.OpError{Op: "verify." + string(stage), Kind: domain.KindCanceled, Stage: stage, Err: err}
	}

	res, err := check()
	if err != nil {
		log.Error("verify.stage", "stage", stage, "err", err)
		return err
	}
	res.Stage = stage
	report.Add(res)

	log.Info("verify.stage",
		"stage", stage,
		"verdict", res.Verdict,
		"status", res.StatusCode,
		"latency_ms", res.LatencyMS,
	)

	switch res.Verdict {
	case domain.VerdictConfirmed:
		return nil
	case domain.VerdictInconclusive:
		log.Warn("verify.inconclusive", "stage", stage, "detail", res.Detail)
		return nil
	}

	if res.Error != nil && res.Error.Kind == domain.ProbeErrorCancel {
		return &domain.OpError{Op: "verify." + string(stage), Kind: domain.KindCanceled, Stage: stage, Err: context.Canceled}
	}

	kind := res.Reason
	if kind == "" {
		kind = domain.KindExecution
	}
	return &domain.OpError{
		Op:    "verify." + string(stage),
		Kind:  kind,
		Stage: stage,
		Err:   failure(kind, res.Detail),
	}
}

func failure(kind domain.ErrorKind, detail string) error {
	var base error
	switch kind {
	case domain.KindUnreachable:
		base = domain.ErrUnreachable
	case domain.KindIdentityMismatch:
		base = domain.ErrIdentityMismatch
	case domain.KindUnauthorized:
		base = domain.ErrUnauthorized
	default:
		base = errors.New("check failed")
	}
	if detail == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, detail)
}

func promptError(op string, err error) error {
	kind := domain.KindInvalidInput
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = domain.KindCanceled
	}
	return &domain.OpError{Op: op, Kind: kind, Err: err}
}
