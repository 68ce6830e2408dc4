package configfinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/crosspost/internal/domain"
	"github.com/aalvaropc/crosspost/internal/ports"
)

// DefaultFile is the config file name searched for.
const DefaultFile = "crosspost.yaml"

// Finder locates crosspost.yaml by searching upward from a directory.
type Finder struct {
	ConfigFile string // defaults to "crosspost.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: DefaultFile}
}

var _ ports.ConfigLocator = (*Finder)(nil)

// FindConfig returns the path of the nearest config file at or above startDir.
func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	name := f.ConfigFile
	if name == "" {
		name = DefaultFile
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "configfinder.find",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, name)
		if st, err := os.Stat(cfgPath); err == nil && !st.IsDir() {
			return cfgPath, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "configfinder.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
