package domain

import "path/filepath"

// Manifest is the parsed form of one manifest file. Raw keeps the exact text
// read from disk so an unmodified manifest composes back byte-identical.
type Manifest struct {
	Path     string
	Raw      string
	Projects []Project
}

func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}
