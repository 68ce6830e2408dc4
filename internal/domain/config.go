package domain

import "time"

// Config represents the crosspost configuration loaded from crosspost.yaml.
type Config struct {
	HTTP     HTTPConfig
	Hubzilla HubzillaConfig
}

type HTTPConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
}

// HubzillaConfig holds the probe endpoints as {{instance}} templates and the
// software names nodeinfo may report.
type HubzillaConfig struct {
	HostMetaURL    string
	NodeInfoURL    string
	CredentialsURL string
	SoftwareNames  []string
}

// DefaultConfig provides sane defaults if crosspost.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			MaxBodyBytes: 256 * 1024,
		},
		Hubzilla: HubzillaConfig{
			HostMetaURL:    "https://{{instance}}/.well-known/host-meta",
			NodeInfoURL:    "https://{{instance}}/nodeinfo/2.0",
			CredentialsURL: "https://{{instance}}/api/z/1.0/channel/export/basic",
			// nodeinfo 2.0 reports hubzilla, 1.0 reports the predecessor name.
			SoftwareNames: []string{"hubzilla", "redmatrix"},
		},
	}
}
