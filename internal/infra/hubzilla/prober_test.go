package hubzilla

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/infra/httpclient"
)

func plainConfig() domain.HubzillaConfig {
	cfg := domain.DefaultConfig().Hubzilla
	cfg.HostMetaURL = strings.Replace(cfg.HostMetaURL, "https://", "http://", 1)
	cfg.NodeInfoURL = strings.Replace(cfg.NodeInfoURL, "https://", "http://", 1)
	cfg.CredentialsURL = strings.Replace(cfg.CredentialsURL, "https://", "http://", 1)
	return cfg
}

func newTestProber(t *testing.T, h http.Handler) (*Prober, domain.Instance) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p := New(httpclient.NewExecutor(), WithConfig(plainConfig()))
	return p, domain.SanitizeInstance(srv.URL)
}

func statusHandler(path string, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestHostMeta_OnlyOKConfirms(t *testing.T) {
	cases := []struct {
		status int
		want   domain.Verdict
	}{
		{http.StatusOK, domain.VerdictConfirmed},
		{http.StatusNoContent, domain.VerdictDenied},
		{http.StatusMovedPermanently, domain.VerdictDenied},
		{http.StatusNotFound, domain.VerdictDenied},
		{http.StatusInternalServerError, domain.VerdictDenied},
	}
	for _, c := range cases {
		p, inst := newTestProber(t, statusHandler("/.well-known/host-meta", c.status, ""))

		res, err := p.HostMeta(context.Background(), inst)
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", c.status, err)
		}
		if res.Verdict != c.want {
			t.Fatalf("status %d: expected %s, got %s (%s)", c.status, c.want, res.Verdict, res.Detail)
		}
		if res.StatusCode != c.status {
			t.Fatalf("expected recorded status %d, got %d", c.status, res.StatusCode)
		}
		if res.Verdict == domain.VerdictDenied && res.Reason != domain.KindUnreachable {
			t.Fatalf("expected unreachable reason, got %s", res.Reason)
		}
	}
}

func TestHostMeta_TransportFailureDenies(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	inst := domain.SanitizeInstance(srv.URL)
	srv.Close()

	p := New(httpclient.NewExecutor(), WithConfig(plainConfig()))
	res, err := p.HostMeta(context.Background(), inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != domain.VerdictDenied {
		t.Fatalf("expected denied, got %s", res.Verdict)
	}
	if res.Error == nil {
		t.Fatalf("expected probe error to be recorded")
	}
	if res.Reason != domain.KindUnreachable {
		t.Fatalf("expected unreachable, got %s", res.Reason)
	}
}

func TestHostMeta_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(httpclient.NewExecutor(httpclient.WithTimeout(30*time.Millisecond)), WithConfig(plainConfig()))
	res, err := p.HostMeta(context.Background(), domain.SanitizeInstance(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Error == nil || res.Error.Kind != domain.ProbeErrorTimeout {
		t.Fatalf("expected timeout probe error, got %+v", res.Error)
	}
}

func TestNodeInfo_NotFoundIsInconclusive(t *testing.T) {
	p, inst := newTestProber(t, statusHandler("/nodeinfo/2.0", http.StatusNotFound, "nope"))

	res, err := p.NodeInfo(context.Background(), inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != domain.VerdictInconclusive {
		t.Fatalf("expected inconclusive, got %s", res.Verdict)
	}
	if !res.Verdict.Passes() {
		t.Fatalf("inconclusive must pass")
	}
}

func TestNodeInfo_SoftwareNames(t *testing.T) {
	cases := []struct {
		body   string
		want   domain.Verdict
		reason domain.ErrorKind
	}{
		{`{"software":{"name":"hubzilla","version":"9.4"}}`, domain.VerdictConfirmed, ""},
		{`{"software":{"name":"redmatrix"}}`, domain.VerdictConfirmed, ""},
		{`{"software":{"name":"Hubzilla"}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":{"name":"mastodon","version":"4.2.0"}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":{}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"version":"2.0"}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":{"name":3}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":{"name":["hubzilla"]}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":[{"name":"hubzilla"}]}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`{"software":{"name":""}}`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`["hubzilla"]`, domain.VerdictDenied, domain.KindIdentityMismatch},
		{`<html>not json</html>`, domain.VerdictDenied, domain.KindIdentityMismatch},
	}
	for _, c := range cases {
		p, inst := newTestProber(t, statusHandler("/nodeinfo/2.0", http.StatusOK, c.body))

		res, err := p.NodeInfo(context.Background(), inst)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.body, err)
		}
		if res.Verdict != c.want {
			t.Fatalf("%s: expected %s, got %s (%s)", c.body, c.want, res.Verdict, res.Detail)
		}
		if res.Reason != c.reason {
			t.Fatalf("%s: expected reason %q, got %q", c.body, c.reason, res.Reason)
		}
	}
}

func TestNodeInfo_RecordsVersion(t *testing.T) {
	p, inst := newTestProber(t, statusHandler("/nodeinfo/2.0", http.StatusOK,
		`{"version":"2.0","software":{"name":"hubzilla","version":"9.4"}}`))

	res, err := p.NodeInfo(context.Background(), inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Software != "hubzilla" || res.Version != "9.4" {
		t.Fatalf("expected hubzilla 9.4, got %q %q", res.Software, res.Version)
	}
}

func TestNodeInfo_UnexpectedStatusIsUnreachable(t *testing.T) {
	p, inst := newTestProber(t, statusHandler("/nodeinfo/2.0", http.StatusBadGateway, ""))

	res, err := p.NodeInfo(context.Background(), inst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != domain.VerdictDenied || res.Reason != domain.KindUnreachable {
		t.Fatalf("expected denied/unreachable, got %s/%s", res.Verdict, res.Reason)
	}
}

func TestCredentials_SendsBasicAuthExport(t *testing.T) {
	var hits int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/z/1.0/channel/export/basic" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("sections") != "channel" || q.Get("posts") != "0" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Basic YWxpY2U6c2VjcmV0" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"channel":{}}`))
	})
	p, inst := newTestProber(t, h)

	ok, err := p.Credentials(context.Background(), domain.AccountDraft{
		Type: domain.AccountHubzilla, Instance: inst, Channel: "alice", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Verdict != domain.VerdictConfirmed {
		t.Fatalf("expected confirmed, got %s (%s)", ok.Verdict, ok.Detail)
	}

	bad, err := p.Credentials(context.Background(), domain.AccountDraft{
		Type: domain.AccountHubzilla, Instance: inst, Channel: "alice", Password: "wrong",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bad.Verdict != domain.VerdictDenied || bad.Reason != domain.KindUnauthorized {
		t.Fatalf("expected denied/unauthorized, got %s/%s", bad.Verdict, bad.Reason)
	}
	if bad.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", bad.StatusCode)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected exactly one request per check (no retry), got %d", n)
	}
}

func TestProber_DefaultHTTPSEndpoints(t *testing.T) {
	srv := httptest.NewTLSServer(statusHandler("/.well-known/host-meta", http.StatusOK, "<XRD/>"))
	defer srv.Close()

	p := New(httpclient.NewExecutor(httpclient.WithClient(srv.Client())))
	res, err := p.HostMeta(context.Background(), domain.SanitizeInstance(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Verdict != domain.VerdictConfirmed {
		t.Fatalf("expected confirmed over https, got %s (%s)", res.Verdict, res.Detail)
	}
	if !strings.HasPrefix(res.URL, "https://") {
		t.Fatalf("expected https url, got %q", res.URL)
	}
}

func TestProber_BadTemplateIsConfigError(t *testing.T) {
	cfg := plainConfig()
	cfg.NodeInfoURL = "http://{{host}}/nodeinfo/2.0"
	p := New(nil, WithConfig(cfg))

	_, err := p.NodeInfo(context.Background(), "example.com")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}
