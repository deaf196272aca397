package status

import (
	"context"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type ModificationSource interface {
	IsModified(ctx context.Context, manifestDir string, project domain.Project) (bool, error)
}
