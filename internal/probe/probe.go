package probe

import (
	"context"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

// Prober performs one liveness check against one target. Implementations
// never return an error: every failure mode is captured in the result so
// the runner can fan out without per-probe error handling.
type Prober interface {
	Check(ctx context.Context, t domain.Target) domain.ProbeResult
}
