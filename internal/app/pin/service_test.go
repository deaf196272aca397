package pin

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type fakeRevisionSource struct {
	revisions map[string]string
	err       error
	calls     []string
}

func (f *fakeRevisionSource) CurrentRevision(_ context.Context, _ string, project domain.Project) (string, error) {
	f.calls = append(f.calls, project.Path)
	if f.err != nil {
		return "", f.err
	}
	return f.revisions[project.Path], nil
}

type fakeComposer struct {
	composed []domain.Project
}

func (f *fakeComposer) Compose(projects []domain.Project) (string, error) {
	f.composed = projects
	return "composed manifest", nil
}

func TestPinReplacesRevisionsInOrder(t *testing.T) {
	manifest := &domain.Manifest{
		Path: "/workspace/manifest.xml",
		Projects: []domain.Project{
			domain.NewProject("gitlab.com", "group/a", "v0.0.0", "a"),
			domain.NewProject("gitlab.com", "group/b", "dev", "b"),
		},
	}
	source := &fakeRevisionSource{revisions: map[string]string{
		"a": "565b113e57b2c67dcaa3e7c2b5040cf4715221df",
		"b": "0e17ac72f89331797b4a2eb1ae2b4c6c89d3c1f0",
	}}
	composer := &fakeComposer{}

	pinned, err := NewService(source, composer).Pin(context.Background(), manifest)
	if err != nil {
		t.Fatalf("Pin returned error: %v", err)
	}

	if len(source.calls) != 2 || source.calls[0] != "a" || source.calls[1] != "b" {
		t.Fatalf("revision queries out of order: %v", source.calls)
	}
	if pinned.Projects[0].Revision != "565b113e57b2c67dcaa3e7c2b5040cf4715221df" {
		t.Fatalf("first project not pinned: %s", pinned.Projects[0].Revision)
	}
	if pinned.Raw != "composed manifest" {
		t.Fatalf("pinned raw = %q", pinned.Raw)
	}
	if len(composer.composed) != 2 || composer.composed[1].Revision != "0e17ac72f89331797b4a2eb1ae2b4c6c89d3c1f0" {
		t.Fatalf("composer did not receive pinned projects: %+v", composer.composed)
	}

	// The source manifest keeps its symbolic revisions.
	if manifest.Projects[0].Revision != "v0.0.0" || manifest.Projects[1].Revision != "dev" {
		t.Fatalf("input manifest mutated: %+v", manifest.Projects)
	}
}

func TestPinLabelsFailuresWithProjectPath(t *testing.T) {
	manifest := &domain.Manifest{
		Path:     "/workspace/manifest.xml",
		Projects: []domain.Project{domain.NewProject("gitlab.com", "group/a", "dev", "a")},
	}
	source := &fakeRevisionSource{err: errors.New("not a git repository")}

	_, err := NewService(source, &fakeComposer{}).Pin(context.Background(), manifest)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.HasPrefix(err.Error(), "a: ") {
		t.Fatalf("error not labeled with project path: %v", err)
	}
}
