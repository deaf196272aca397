package actions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newCheckout(t *testing.T) (string, domain.Project) {
	t.Helper()
	manifestDir := t.TempDir()
	project := domain.NewProject("gitlab.com", "group/widget", "main", "widget")
	writeFile(t, filepath.Join(manifestDir, "widget", "README.md"), "hello\n")
	return manifestDir, project
}

func TestLinkFileCreatesRelativeSymlink(t *testing.T) {
	manifestDir, project := newCheckout(t)
	project.Actions = []domain.Action{
		{Kind: domain.ActionLinkFile, Src: "README.md", Dest: "docs/ln_README.md"},
	}

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	dest := filepath.Join(manifestDir, "docs", "ln_README.md")
	target, err := os.Readlink(dest)
	if err != nil {
		t.Fatalf("read link: %v", err)
	}
	if filepath.IsAbs(target) {
		t.Fatalf("symlink target is absolute: %s", target)
	}
	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read through link: %v", err)
	}
	if string(content) != "hello\n" {
		t.Fatalf("link resolves to wrong content: %q", content)
	}
}

func TestCopyFileOverwritesDestination(t *testing.T) {
	manifestDir, project := newCheckout(t)
	project.Actions = []domain.Action{
		{Kind: domain.ActionCopyFile, Src: "README.md", Dest: "cp_README.md"},
	}

	dest := filepath.Join(manifestDir, "cp_README.md")
	writeFile(t, dest, "stale\n")

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(content) != "hello\n" {
		t.Fatalf("destination not overwritten: %q", content)
	}
}

func TestCopyFileReplacesDirectoryDestination(t *testing.T) {
	manifestDir, project := newCheckout(t)
	project.Actions = []domain.Action{
		{Kind: domain.ActionCopyFile, Src: "README.md", Dest: "out"},
	}

	writeFile(t, filepath.Join(manifestDir, "out", "stale.txt"), "x\n")

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	info, err := os.Stat(filepath.Join(manifestDir, "out"))
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if info.IsDir() {
		t.Fatal("pre-existing directory was not replaced")
	}
}

func TestCopyDirRecursive(t *testing.T) {
	manifestDir, project := newCheckout(t)
	writeFile(t, filepath.Join(manifestDir, "widget", "assets", "a.txt"), "a\n")
	writeFile(t, filepath.Join(manifestDir, "widget", "assets", "sub", "b.txt"), "b\n")
	project.Actions = []domain.Action{
		{Kind: domain.ActionCopyDir, Src: "assets", Dest: "shared/assets"},
	}

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, name := range []string{"a.txt", filepath.Join("sub", "b.txt")} {
		if _, err := os.Stat(filepath.Join(manifestDir, "shared", "assets", name)); err != nil {
			t.Fatalf("missing copied file %s: %v", name, err)
		}
	}
}

func TestDeleteProjectRemovesCheckout(t *testing.T) {
	manifestDir, project := newCheckout(t)
	project.Actions = domain.NormalizeActions([]domain.Action{
		{Kind: domain.ActionDeleteProject},
		{Kind: domain.ActionCopyFile, Src: "README.md", Dest: "cp_README.md"},
	})

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// The copy ran before the checkout disappeared.
	if _, err := os.Stat(filepath.Join(manifestDir, "cp_README.md")); err != nil {
		t.Fatalf("copy did not run before delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(manifestDir, "widget")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("project checkout still exists")
	}
}

func TestRunFailsOnMissingSource(t *testing.T) {
	manifestDir, project := newCheckout(t)
	project.Actions = []domain.Action{
		{Kind: domain.ActionCopyFile, Src: "nope.txt", Dest: "out.txt"},
	}

	if err := NewExecutor().Run(context.Background(), manifestDir, project); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}
