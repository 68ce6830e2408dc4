package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/ports"
)

// FileName is the config file written by Init and searched for by configfinder.
const FileName = "crosspost.yaml"

// Initializer writes a starter crosspost.yaml holding the defaults.
type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.ConfigInitializer = (*Initializer)(nil)

// Init writes dir/crosspost.yaml. An existing file is kept unless force is
// set; created reports whether anything was written.
func (i *Initializer) Init(dir string, force bool) (path string, created bool, err error) {
	path = filepath.Join(filepath.Clean(dir), FileName)

	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, false, &domain.OpError{Op: "config.init", Kind: domain.KindExecution, Path: path, Err: err}
	}

	b, err := Marshal(domain.DefaultConfig())
	if err != nil {
		return path, false, &domain.OpError{Op: "config.init", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return path, false, &domain.OpError{Op: "config.init", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return path, true, nil
}

// Marshal renders cfg in the crosspost.yaml layout.
func Marshal(cfg domain.Config) ([]byte, error) {
	maxBody := cfg.HTTP.MaxBodyBytes
	dto := YAMLFile{
		Crosspost: YAMLConfig{
			HTTP: YAMLHTTP{
				Timeout:      cfg.HTTP.Timeout.String(),
				MaxBodyBytes: &maxBody,
			},
			Hubzilla: YAMLHubzilla{
				HostMetaURL:    cfg.Hubzilla.HostMetaURL,
				NodeInfoURL:    cfg.Hubzilla.NodeInfoURL,
				CredentialsURL: cfg.Hubzilla.CredentialsURL,
				SoftwareNames:  append([]string(nil), cfg.Hubzilla.SoftwareNames...),
			},
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dto); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
