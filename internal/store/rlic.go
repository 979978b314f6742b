// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package store reads and writes project files (.rlic). The on-disk format
// is a small YAML document carrying the product name and both serialized key
// strings exactly as generated; loading gives back what saving wrote, byte
// for byte on the key material.
package store // import "github.com/toeirei/licmaster/internal/store"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"

	"github.com/toeirei/licmaster/internal/model"
)

// SchemaVersion is the current project-file schema. Files with a newer
// version are refused rather than half-read.
const SchemaVersion = 1

// ErrCorruptProject marks files that exist and are readable but do not hold
// a usable project: bad YAML, wrong schema, or half a keypair.
var ErrCorruptProject = errors.New("project file is corrupt")

type projectFile struct {
	SchemaVersion int         `yaml:"schema_version"`
	Product       productFile `yaml:"product"`
}

type productFile struct {
	Name       string `yaml:"name"`
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
}

// FileStore persists projects to .rlic files.
type FileStore struct {
	// KeepBackups copies an existing destination to <path>.bak before it is
	// overwritten. Wired to the backups.keep_rlic_bak config switch.
	KeepBackups bool
}

// NewFileStore returns a store with backup snapshots enabled.
func NewFileStore() *FileStore {
	return &FileStore{KeepBackups: true}
}

// Save writes the project to path. The write is atomic: data goes to a temp
// file in the destination directory first and is renamed over the target, so
// a crash never leaves a truncated project file behind.
func (s *FileStore) Save(project *model.Project, path string) error {
	if project == nil || project.Product() == nil {
		return errors.New("nothing to save: no project")
	}
	product := project.Product()

	data, err := yaml.Marshal(projectFile{
		SchemaVersion: SchemaVersion,
		Product: productFile{
			Name:       product.Name(),
			PublicKey:  product.PublicKey(),
			PrivateKey: product.PrivateKey(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create directory %s: %w", dir, err)
	}

	if s.KeepBackups {
		if old, readErr := os.ReadFile(path); readErr == nil {
			if bakErr := os.WriteFile(path+".bak", old, filePerm()); bakErr != nil {
				return fmt.Errorf("could not snapshot existing file: %w", bakErr)
			}
		}
	}

	tmp, err := os.CreateTemp(dir, ".rlic-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := tmp.Chmod(filePerm()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write project file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Load reads a project file and returns a fresh project instance with its
// file association set to path. The current in-memory state is never touched
// here; callers install the result only once Load succeeds.
func (s *FileStore) Load(path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read project file: %w", err)
	}

	var pf projectFile
	if err := yaml.UnmarshalWithOptions(data, &pf, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProject, err)
	}
	if pf.SchemaVersion < 1 || pf.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrCorruptProject, pf.SchemaVersion)
	}
	// A keypair is all-or-nothing; a file with half of one was not written
	// by us.
	if (pf.Product.PublicKey == "") != (pf.Product.PrivateKey == "") {
		return nil, fmt.Errorf("%w: file carries half a keypair", ErrCorruptProject)
	}

	product := model.NewProduct(pf.Product.Name)
	if pf.Product.PublicKey != "" {
		product.SetKeyPair(pf.Product.PublicKey, pf.Product.PrivateKey)
	}
	project := model.NewProject()
	project.SetProduct(product)
	project.SetAssociatedFile(path)
	return project, nil
}

// Key files and project files carry private key material.
func filePerm() os.FileMode {
	if runtime.GOOS == "windows" {
		return 0o644
	}
	return 0o600
}
