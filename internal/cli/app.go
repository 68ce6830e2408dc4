package cli

import (
	"os"
	"strings"
	"time"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/infra/config"
	"github.com/aalvaropc/crosspost/internal/infra/configfinder"
	"github.com/aalvaropc/crosspost/internal/infra/httpclient"
	"github.com/aalvaropc/crosspost/internal/infra/hubzilla"
	"github.com/aalvaropc/crosspost/internal/infra/logger"
	"github.com/aalvaropc/crosspost/internal/ports"
	"github.com/aalvaropc/crosspost/internal/usecase"
)

type appCtx struct {
	cfg        domain.Config
	configPath string

	prober ports.InstanceProber
	verify *usecase.VerifyAccount
}

// loadApp resolves configuration and wires the prober and use case.
// timeout overrides the configured HTTP timeout when positive.
func loadApp(opts *rootOptions, timeout time.Duration) (*appCtx, error) {
	cfg, path, err := resolveConfig(opts.configPath, configfinder.NewFinder())
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		cfg.HTTP.Timeout = timeout
	}

	log := logger.L()
	if path != "" {
		log.Info("config.loaded", "path", path)
	}

	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.HTTP.Timeout
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(cfg.HTTP.Timeout),
		httpclient.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
	)

	prober := hubzilla.New(exec,
		hubzilla.WithConfig(cfg.Hubzilla),
		hubzilla.WithLogger(log),
	)

	return &appCtx{
		cfg:        cfg,
		configPath: path,
		prober:     prober,
		verify:     usecase.NewVerifyAccount(prober, usecase.WithLogger(log)),
	}, nil
}

// resolveConfig loads an explicit config file, or the nearest crosspost.yaml
// above the working directory. No file at all means defaults.
func resolveConfig(explicit string, locator ports.ConfigLocator) (domain.Config, string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		cfg, err := config.Load(p)
		return cfg, p, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return domain.DefaultConfig(), "", nil
	}

	path, err := locator.FindConfig(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.DefaultConfig(), "", nil
		}
		return domain.DefaultConfig(), "", err
	}

	cfg, err := config.Load(path)
	return cfg, path, err
}
