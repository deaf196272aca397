package sync

import (
	"context"

	"github.com/osvaldoandrade/treesync/internal/domain"
	"github.com/osvaldoandrade/treesync/internal/progress"
)

type Provider interface {
	Init(ctx context.Context, manifestDir string, project domain.Project, mode domain.Mode) error
	Checkout(ctx context.Context, manifestDir string, project domain.Project, light, force bool, rep progress.Reporter) error
}

type ActionRunner interface {
	Run(ctx context.Context, manifestDir string, project domain.Project) error
}

// Surface hands out one progress reporter per project. Rows are attached in
// manifest order before any worker starts so rendering order is stable.
type Surface interface {
	Attach(label string) progress.Reporter
}

type IDGenerator interface {
	NewID() (string, error)
}
