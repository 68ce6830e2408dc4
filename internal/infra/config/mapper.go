package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// Map overlays the parsed YAML onto defaults and validates the result.
func Map(path string, y YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if s := strings.TrimSpace(y.HTTP.Timeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, invalidField(path, "http.timeout", err.Error())
		}
		if d <= 0 {
			return cfg, invalidField(path, "http.timeout", "must be positive")
		}
		cfg.HTTP.Timeout = d
	}
	if y.HTTP.MaxBodyBytes != nil {
		if *y.HTTP.MaxBodyBytes <= 0 {
			return cfg, invalidField(path, "http.max_body_bytes", "must be positive")
		}
		cfg.HTTP.MaxBodyBytes = *y.HTTP.MaxBodyBytes
	}

	endpoints := []struct {
		field string
		value string
		dst   *string
	}{
		{"hubzilla.host_meta_url", y.Hubzilla.HostMetaURL, &cfg.Hubzilla.HostMetaURL},
		{"hubzilla.nodeinfo_url", y.Hubzilla.NodeInfoURL, &cfg.Hubzilla.NodeInfoURL},
		{"hubzilla.credentials_url", y.Hubzilla.CredentialsURL, &cfg.Hubzilla.CredentialsURL},
	}
	for _, e := range endpoints {
		v := strings.TrimSpace(e.value)
		if v == "" {
			continue
		}
		if !strings.Contains(v, "{{instance}}") {
			return cfg, invalidField(path, e.field, "must contain {{instance}}")
		}
		*e.dst = v
	}

	if y.Hubzilla.SoftwareNames != nil {
		names := make([]string, 0, len(y.Hubzilla.SoftwareNames))
		for i, n := range y.Hubzilla.SoftwareNames {
			n = strings.TrimSpace(n)
			if n == "" {
				return cfg, invalidField(path, fmt.Sprintf("hubzilla.software_names[%d]", i), "name is empty")
			}
			names = append(names, n)
		}
		if len(names) == 0 {
			return cfg, invalidField(path, "hubzilla.software_names", "at least one name is required")
		}
		cfg.Hubzilla.SoftwareNames = names
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
