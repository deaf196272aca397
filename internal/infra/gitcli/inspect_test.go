package gitcli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("open worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := worktree.Add(name); err != nil {
		t.Fatalf("stage file: %v", err)
	}
	hash, err := worktree.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

func initFixtureRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return dir
}

func TestHeadRevisionAndBranch(t *testing.T) {
	dir := initFixtureRepo(t)
	hash := commitFile(t, dir, "README.md", "hello\n")

	revision, err := headRevision(dir)
	if err != nil {
		t.Fatalf("headRevision returned error: %v", err)
	}
	if revision != hash {
		t.Fatalf("revision = %s, want %s", revision, hash)
	}

	onBranch, err := headIsBranch(dir)
	if err != nil {
		t.Fatalf("headIsBranch returned error: %v", err)
	}
	if !onBranch {
		t.Fatal("fresh commit should leave HEAD on a branch")
	}
}

func TestIsShallowOnFullClone(t *testing.T) {
	dir := initFixtureRepo(t)
	commitFile(t, dir, "README.md", "hello\n")

	shallow, err := isShallow(dir)
	if err != nil {
		t.Fatalf("isShallow returned error: %v", err)
	}
	if shallow {
		t.Fatal("full repository reported as shallow")
	}
}

func TestHasLocalModificationsIgnoresUntracked(t *testing.T) {
	dir := initFixtureRepo(t)
	commitFile(t, dir, "README.md", "hello\n")

	dirty, err := hasLocalModifications(dir)
	if err != nil {
		t.Fatalf("hasLocalModifications returned error: %v", err)
	}
	if dirty {
		t.Fatal("clean worktree reported dirty")
	}

	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write untracked file: %v", err)
	}
	dirty, err = hasLocalModifications(dir)
	if err != nil {
		t.Fatalf("hasLocalModifications returned error: %v", err)
	}
	if dirty {
		t.Fatal("untracked file must not count as a modification")
	}

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("edited\n"), 0o644); err != nil {
		t.Fatalf("edit tracked file: %v", err)
	}
	dirty, err = hasLocalModifications(dir)
	if err != nil {
		t.Fatalf("hasLocalModifications returned error: %v", err)
	}
	if !dirty {
		t.Fatal("tracked modification not detected")
	}
}
