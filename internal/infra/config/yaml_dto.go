package config

type YAMLFile struct {
	Crosspost YAMLConfig `yaml:"crosspost"`
}

type YAMLConfig struct {
	HTTP     YAMLHTTP     `yaml:"http"`
	Hubzilla YAMLHubzilla `yaml:"hubzilla"`
}

type YAMLHTTP struct {
	Timeout      string `yaml:"timeout"`
	MaxBodyBytes *int64 `yaml:"max_body_bytes"`
}

type YAMLHubzilla struct {
	HostMetaURL    string   `yaml:"host_meta_url"`
	NodeInfoURL    string   `yaml:"nodeinfo_url"`
	CredentialsURL string   `yaml:"credentials_url"`
	SoftwareNames  []string `yaml:"software_names"`
}
