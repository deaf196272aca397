package sync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	gosync "sync"

	"github.com/osvaldoandrade/treesync/internal/domain"
	"github.com/osvaldoandrade/treesync/internal/progress"
)

type Options struct {
	Mode  domain.Mode
	Light bool
	Quiet bool
	Force bool
}

type Service struct {
	provider Provider
	actions  ActionRunner
	surface  Surface
	ids      IDGenerator
}

func NewService(provider Provider, actions ActionRunner, surface Surface, ids IDGenerator) *Service {
	return &Service{
		provider: provider,
		actions:  actions,
		surface:  surface,
		ids:      ids,
	}
}

// Sync runs the init/checkout/actions pipeline for every project in the
// manifest concurrently. Workers fail independently: one project's failure
// never blocks or cancels a sibling, and every failure message survives into
// the aggregate error.
func (s *Service) Sync(ctx context.Context, manifest *domain.Manifest, opts Options) error {
	if opts.Light {
		for _, project := range manifest.Projects {
			if domain.IsCommitID(project.Revision) {
				return fmt.Errorf("%s: revision %s: %w", project.Path, project.Revision, ErrLightCommitID)
			}
		}
	}

	if s.ids != nil {
		if runID, err := s.ids.NewID(); err == nil {
			slog.Debug("starting sync run", "run", runID, "projects", len(manifest.Projects))
		}
	}

	manifestDir := manifest.Dir()

	reporters := make([]progress.Reporter, len(manifest.Projects))
	for i, project := range manifest.Projects {
		if opts.Quiet || s.surface == nil {
			reporters[i] = progress.Nop()
			continue
		}
		reporters[i] = s.surface.Attach(project.Path)
	}

	// Sized so no producer ever blocks: each pipeline emits at most one
	// result per stage.
	results := make(chan error, 3*len(manifest.Projects))

	var wg gosync.WaitGroup
	for i, project := range manifest.Projects {
		wg.Add(1)
		go func(project domain.Project, rep progress.Reporter) {
			defer wg.Done()
			defer rep.Finish()
			s.runPipeline(ctx, manifestDir, project, opts, rep, results)
		}(project, reporters[i])
	}
	wg.Wait()
	close(results)

	var failures []string
	for err := range results {
		if err != nil {
			failures = append(failures, err.Error())
		}
	}
	if len(failures) == 0 {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("\n\n")
	for _, failure := range failures {
		msg.WriteString(failure)
		msg.WriteByte('\n')
	}
	return fmt.Errorf("%w:%s", ErrSyncFailed, msg.String())
}

// runPipeline executes the three stages for one project, short-circuiting on
// the first failed stage. Later stages of the same project are skipped, other
// projects are not.
func (s *Service) runPipeline(ctx context.Context, manifestDir string, project domain.Project, opts Options, rep progress.Reporter, results chan<- error) {
	err := s.provider.Init(ctx, manifestDir, project, opts.Mode)
	results <- labelFailure(project, err)
	if err != nil {
		return
	}

	err = s.provider.Checkout(ctx, manifestDir, project, opts.Light, opts.Force, rep)
	results <- labelFailure(project, err)
	if err != nil {
		return
	}

	err = s.actions.Run(ctx, manifestDir, project)
	results <- labelFailure(project, err)
}

func labelFailure(project domain.Project, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", project.Path, err)
}
