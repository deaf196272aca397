package pin

import (
	"context"
	"fmt"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type Service struct {
	source   RevisionSource
	composer Composer
}

func NewService(source RevisionSource, composer Composer) *Service {
	return &Service{source: source, composer: composer}
}

// Pin snapshots every project's currently checked out commit id into a new
// manifest. Projects are read sequentially in manifest order so the output
// order always matches the input; the input manifest is never modified.
func (s *Service) Pin(ctx context.Context, manifest *domain.Manifest) (*domain.Manifest, error) {
	manifestDir := manifest.Dir()

	pinned := make([]domain.Project, 0, len(manifest.Projects))
	for _, project := range manifest.Projects {
		commitID, err := s.source.CurrentRevision(ctx, manifestDir, project)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", project.Path, err)
		}
		pinned = append(pinned, project.Pin(commitID))
	}

	raw, err := s.composer.Compose(pinned)
	if err != nil {
		return nil, err
	}

	return &domain.Manifest{
		Path:     manifest.Path,
		Raw:      raw,
		Projects: pinned,
	}, nil
}
