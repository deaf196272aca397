package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultRevision = "main"
	DefaultHost     = "github.com"
)

type Mode string

const (
	ModeHTTPS Mode = "https"
	ModeSSH   Mode = "ssh"
)

func (m Mode) IsValid() bool {
	return m == ModeHTTPS || m == ModeSSH
}

type ActionKind string

const (
	ActionLinkFile      ActionKind = "linkfile"
	ActionCopyFile      ActionKind = "copyfile"
	ActionCopyDir       ActionKind = "copydir"
	ActionDeleteProject ActionKind = "delete-project"
)

func (k ActionKind) IsValid() bool {
	return k.IsFileAction() || k == ActionDeleteProject
}

func (k ActionKind) IsFileAction() bool {
	return k == ActionLinkFile || k == ActionCopyFile || k == ActionCopyDir
}

// Action is a post-checkout step. Src is relative to the project checkout,
// Dest is relative to the manifest directory. DeleteProject carries no paths.
type Action struct {
	Kind ActionKind
	Src  string
	Dest string
}

type Project struct {
	URI      string
	Name     string
	Revision string
	Path     string
	Actions  []Action
}

func NewProject(uri, name, revision, path string) Project {
	return Project{
		URI:      uri,
		Name:     name,
		Revision: revision,
		Path:     path,
	}
}

// Pin returns a copy of the project with its revision replaced by commitID.
// The receiver is never modified.
func (p Project) Pin(commitID string) Project {
	pinned := p
	pinned.Revision = commitID
	pinned.Actions = append([]Action(nil), p.Actions...)
	return pinned
}

func (p Project) HTTPSURL() string {
	return fmt.Sprintf("https://%s/%s.git", p.URI, p.Name)
}

func (p Project) SSHURL() string {
	return fmt.Sprintf("git@%s:%s.git", p.URI, p.Name)
}

func (p Project) RemoteURL(mode Mode) string {
	if mode == ModeHTTPS {
		return p.HTTPSURL()
	}
	return p.SSHURL()
}

// NormalizeActions keeps file actions in declaration order and moves a single
// delete-project action to the end. Duplicate delete-project actions collapse
// into one, so all file actions always run against a live checkout.
func NormalizeActions(actions []Action) []Action {
	if len(actions) == 0 {
		return actions
	}
	normalized := make([]Action, 0, len(actions))
	deleteSeen := false
	for _, action := range actions {
		if action.Kind == ActionDeleteProject {
			deleteSeen = true
			continue
		}
		normalized = append(normalized, action)
	}
	if deleteSeen {
		normalized = append(normalized, Action{Kind: ActionDeleteProject})
	}
	return normalized
}

// Defaults carries the manifest-scoped fallback values applied to projects
// that omit revision or uri attributes.
type Defaults struct {
	Revision string
	URI      string
}

func (d Defaults) WithFallbacks() Defaults {
	if strings.TrimSpace(d.Revision) == "" {
		d.Revision = DefaultRevision
	}
	if strings.TrimSpace(d.URI) == "" {
		d.URI = DefaultHost
	}
	return d
}

// IsCommitID reports whether revision looks like a raw commit id rather than
// a branch or tag name. Lightweight syncs cannot target commit ids.
func IsCommitID(revision string) bool {
	if len(revision) != 40 && len(revision) != 64 {
		return false
	}
	for _, r := range revision {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
