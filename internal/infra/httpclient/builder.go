package httpclient

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// BasicAuth returns the Authorization header value for name and password:
// "Basic " + base64(name + ":" + password).
func BasicAuth(name, password string) string {
	raw := name + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// BuildRequest builds an HTTP request from a domain ProbeRequest.
// Probes never carry a body.
func BuildRequest(ctx context.Context, spec domain.ProbeRequest) (*http.Request, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidRequest,
		}
	}

	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	switch method {
	case "":
		method = http.MethodGet
	case http.MethodGet, http.MethodPost, http.MethodHead:
	default:
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidRequest,
		}
	}

	u, err := url.Parse(spec.URL)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	if u.Host == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidInput,
			Err:  domain.ErrInvalidRequest,
		}
	}

	if len(spec.Query) > 0 {
		q := u.Query()
		for k, v := range spec.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), http.NoBody)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}
