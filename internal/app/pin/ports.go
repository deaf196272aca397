package pin

import (
	"context"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type RevisionSource interface {
	CurrentRevision(ctx context.Context, manifestDir string, project domain.Project) (string, error)
}

type Composer interface {
	Compose(projects []domain.Project) (string, error)
}
