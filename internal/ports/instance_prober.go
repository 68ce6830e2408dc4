package ports

import (
	"context"

	"github.com/aalvaropc/crosspost/internal/domain"
)

// InstanceProber runs the individual checks against a remote instance.
// Each call returns what it observed; a non-passing verdict is not an error.
// Errors are reserved for problems building the probe itself.
type InstanceProber interface {
	HostMeta(ctx context.Context, instance domain.Instance) (domain.CheckResult, error)
	NodeInfo(ctx context.Context, instance domain.Instance) (domain.CheckResult, error)
	Credentials(ctx context.Context, account domain.AccountDraft) (domain.CheckResult, error)
}
