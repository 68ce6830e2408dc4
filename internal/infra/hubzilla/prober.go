package hubzilla

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aalvaropc/crosspost/internal/app/template"
	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/infra/httpclient"
	"github.com/aalvaropc/crosspost/internal/ports"
	"github.com/aalvaropc/crosspost/internal/usecase/assert"
	"github.com/aalvaropc/crosspost/internal/usecase/extract"
)

const (
	softwareNamePath    = "$.software.name"
	softwareVersionPath = "$.software.version"
)

// Prober runs the host-meta, nodeinfo and credential checks against a
// Hubzilla instance.
type Prober struct {
	exec *httpclient.Executor
	cfg  domain.HubzillaConfig
	log  *slog.Logger
}

type Option func(*Prober)

// WithConfig overrides endpoint templates and recognized software names.
func WithConfig(cfg domain.HubzillaConfig) Option {
	return func(p *Prober) { p.cfg = cfg }
}

func WithLogger(log *slog.Logger) Option {
	return func(p *Prober) {
		if log != nil {
			p.log = log
		}
	}
}

func New(exec *httpclient.Executor, opts ...Option) *Prober {
	if exec == nil {
		exec = httpclient.NewExecutor()
	}
	p := &Prober{
		exec: exec,
		cfg:  domain.DefaultConfig().Hubzilla,
		log:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.InstanceProber = (*Prober)(nil)

// HostMeta confirms the instance iff /.well-known/host-meta answers exactly 200.
// A missing document does not prove the instance is broken, nor does its
// presence prove federation works.
func (p *Prober) HostMeta(ctx context.Context, instance domain.Instance) (domain.CheckResult, error) {
	res := domain.CheckResult{Stage: domain.StageHostMeta}

	url, err := template.EndpointURL(p.cfg.HostMetaURL, instance)
	if err != nil {
		return res, err
	}
	res.URL = url

	if _, err := p.probe(ctx, domain.ProbeRequest{Method: http.MethodGet, URL: url}, &res); err != nil {
		return res, err
	}
	if res.Error != nil {
		return deny(res, domain.KindUnreachable, transportDetail(res.Error)), nil
	}

	a := assert.Status(http.StatusOK, res.StatusCode)
	if !a.Passed {
		return deny(res, domain.KindUnreachable, "host-meta: "+a.Message), nil
	}
	res.Verdict = domain.VerdictConfirmed
	res.Detail = "host-meta: " + a.Message
	return res, nil
}

// NodeInfo checks the software name reported by /nodeinfo/2.0.
// A 404 is inconclusive: the statistics plugin that serves nodeinfo can be
// disabled on a genuine instance.
func (p *Prober) NodeInfo(ctx context.Context, instance domain.Instance) (domain.CheckResult, error) {
	res := domain.CheckResult{Stage: domain.StageNodeInfo}

	url, err := template.EndpointURL(p.cfg.NodeInfoURL, instance)
	if err != nil {
		return res, err
	}
	res.URL = url

	resp, err := p.probe(ctx, domain.ProbeRequest{
		Method:  http.MethodGet,
		URL:     url,
		Headers: map[string]string{"Accept": "application/json"},
	}, &res)
	if err != nil {
		return res, err
	}
	if res.Error != nil {
		return deny(res, domain.KindUnreachable, transportDetail(res.Error)), nil
	}

	switch res.StatusCode {
	case http.StatusNotFound:
		res.Verdict = domain.VerdictInconclusive
		res.Detail = "nodeinfo not published; software identity unknown"
		return res, nil
	case http.StatusOK:
	default:
		return deny(res, domain.KindUnreachable, "nodeinfo: "+assert.Status(http.StatusOK, res.StatusCode).Message), nil
	}

	doc, err := extract.Parse(resp.BodyBytes)
	if err != nil {
		return deny(res, domain.KindIdentityMismatch, "nodeinfo: "+extract.ErrNotJSON.Error()), nil
	}

	name, err := doc.String(softwareNamePath)
	if err != nil {
		detail := "nodeinfo: software.name is missing"
		if errors.Is(err, extract.ErrNotString) {
			detail = "nodeinfo: software.name is not a string"
		}
		return deny(res, domain.KindIdentityMismatch, detail), nil
	}
	res.Software = name
	if v, verr := doc.Text(softwareVersionPath); verr == nil {
		res.Version = v
	}

	a := assert.OneOf("software.name", name, p.cfg.SoftwareNames)
	if !a.Passed {
		return deny(res, domain.KindIdentityMismatch, "nodeinfo: "+a.Message), nil
	}
	res.Verdict = domain.VerdictConfirmed
	res.Detail = "nodeinfo: " + a.Message
	return res, nil
}

// Credentials performs one authenticated channel export with posts=0.
// Status 200 is taken as proof the credentials are valid. There is no retry,
// so a transient failure looks the same as a rejected password.
func (p *Prober) Credentials(ctx context.Context, account domain.AccountDraft) (domain.CheckResult, error) {
	res := domain.CheckResult{Stage: domain.StageCredentials}

	url, err := template.EndpointURL(p.cfg.CredentialsURL, account.Instance)
	if err != nil {
		return res, err
	}
	res.URL = url

	_, err = p.probe(ctx, domain.ProbeRequest{
		Method: http.MethodPost,
		URL:    url,
		Query: map[string]string{
			"sections": "channel",
			"posts":    "0",
		},
		Headers: map[string]string{
			"Authorization": httpclient.BasicAuth(string(account.Channel), account.Password.Reveal()),
		},
	}, &res)
	if err != nil {
		return res, err
	}
	if res.Error != nil {
		return deny(res, domain.KindUnreachable, transportDetail(res.Error)), nil
	}

	a := assert.Status(http.StatusOK, res.StatusCode)
	if !a.Passed {
		return deny(res, domain.KindUnauthorized, "channel export: "+a.Message), nil
	}
	res.Verdict = domain.VerdictConfirmed
	res.Detail = "channel export: " + a.Message
	return res, nil
}

// probe sends pr and records what it observed on res. The returned error is
// non-nil only when the request cannot be built.
func (p *Prober) probe(ctx context.Context, pr domain.ProbeRequest, res *domain.CheckResult) (httpclient.ResponseData, error) {
	req, err := httpclient.BuildRequest(ctx, pr)
	if err != nil {
		return httpclient.ResponseData{}, err
	}

	resp, err := p.exec.Do(ctx, req)
	res.StatusCode = resp.Status
	res.LatencyMS = resp.Duration.Milliseconds()
	if err != nil {
		res.Error = domain.NewProbeError(err)
		p.log.Warn("probe.failed",
			"stage", res.Stage,
			"url", res.URL,
			"kind", res.Error.Kind,
			"err", err,
		)
		return resp, nil
	}

	p.log.Debug("probe.done",
		"stage", res.Stage,
		"method", req.Method,
		"url", res.URL,
		"status", resp.Status,
		"latency_ms", res.LatencyMS,
		"truncated", resp.Truncated,
	)
	return resp, nil
}

func deny(res domain.CheckResult, reason domain.ErrorKind, detail string) domain.CheckResult {
	res.Verdict = domain.VerdictDenied
	res.Reason = reason
	res.Detail = detail
	return res
}

func transportDetail(pe *domain.ProbeError) string {
	return fmt.Sprintf("request failed (%s): %s", pe.Kind, pe.Message)
}
