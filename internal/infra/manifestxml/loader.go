package manifestxml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

// Load reads and parses the manifest file at path. The stored path is made
// absolute so project paths resolve against the manifest directory no matter
// where the process was started.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrManifestNotFound)
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path %s: %w", path, err)
	}

	parser := NewParser()
	projects, err := parser.Parse(string(data))
	if err != nil {
		return nil, err
	}

	return &domain.Manifest{
		Path:     absPath,
		Raw:      string(data),
		Projects: projects,
	}, nil
}

// Generate writes the default manifest template to path.
func Generate(path string) error {
	if err := os.WriteFile(path, []byte(DefaultManifest), 0o644); err != nil {
		return fmt.Errorf("generate default manifest %s: %w", path, err)
	}
	return nil
}

// Save writes composed manifest text to path.
func Save(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("save manifest %s: %w", path, err)
	}
	return nil
}
