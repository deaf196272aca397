package status

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type Service struct {
	source ModificationSource
}

func NewService(source ModificationSource) *Service {
	return &Service{source: source}
}

// List returns every project's checkout path relative to workdir, in
// manifest order.
func (s *Service) List(manifest *domain.Manifest, workdir string) []string {
	paths := make([]string, 0, len(manifest.Projects))
	for _, project := range manifest.Projects {
		paths = append(paths, relativePath(manifest, project, workdir))
	}
	return paths
}

// Report returns one line per project: the relative path, padded to align,
// followed by a modification marker when tracked files changed. A provider
// failure becomes that project's status text instead of aborting the report.
func (s *Service) Report(ctx context.Context, manifest *domain.Manifest, workdir string) []string {
	manifestDir := manifest.Dir()

	type entry struct {
		path   string
		status string
	}
	entries := make([]entry, 0, len(manifest.Projects))
	maxLen := 0

	for _, project := range manifest.Projects {
		path := relativePath(manifest, project, workdir)
		if len(path) > maxLen {
			maxLen = len(path)
		}

		modified, err := s.source.IsModified(ctx, manifestDir, project)
		status := ""
		switch {
		case err != nil:
			status = fmt.Sprintf(" (%v)", err)
		case modified:
			status = " (modified)"
		}
		entries = append(entries, entry{path: path, status: status})
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		padding := strings.Repeat(" ", maxLen-len(e.path))
		lines = append(lines, e.path+padding+e.status)
	}
	return lines
}

func relativePath(manifest *domain.Manifest, project domain.Project, workdir string) string {
	abs := filepath.Join(manifest.Dir(), project.Path)
	rel, err := filepath.Rel(workdir, abs)
	if err != nil {
		return abs
	}
	return rel
}
