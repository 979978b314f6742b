// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package project implements the administration core: one in-memory project
// under edit, the idempotent save workflow, opening existing project files,
// and keypair generation for the product under edit.
package project // import "github.com/toeirei/licmaster/internal/project"

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/toeirei/licmaster/internal/clipboard"
	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/model"
)

// KeyPairGenerator produces both serialized halves of a fresh keypair in
// one call. Implemented by rsakey.Generator.
type KeyPairGenerator interface {
	Generate() (publicKey, privateKey string, err error)
}

// PersistenceGateway reads and writes project files. Implemented by
// store.FileStore.
type PersistenceGateway interface {
	Save(project *model.Project, path string) error
	Load(path string) (*model.Project, error)
}

// Controller owns the current project and runs every user-facing operation
// on it. A single mutex serializes the entry points; UI layers drive the
// controller from their own goroutines and subscribe for change events.
//
// One subscription here observes everything: product-level changes (name,
// keypair) are forwarded, and the controller fires itself on wholesale
// project replacement and completed saves.
type Controller struct {
	model.Observable

	mu      sync.Mutex
	project *model.Project
	unwatch func()
	dirty   atomic.Bool

	generator KeyPairGenerator
	store     PersistenceGateway
	dialogs   dialog.Gateway
	clip      clipboard.Sink

	// SaveModelFactory and OpenModelFactory build the dialog models Save
	// and Open present. They default to the stock request models; tests
	// and embedders swap them to adjust titles or suggest file names.
	SaveModelFactory func() dialog.SaveModel
	OpenModelFactory func() dialog.OpenModel
}

// NewController wires the collaborators together. The controller starts
// without a project; call NewProject or Open before anything else.
func NewController(generator KeyPairGenerator, gateway PersistenceGateway, dialogs dialog.Gateway, clip clipboard.Sink) *Controller {
	return &Controller{
		generator:        generator,
		store:            gateway,
		dialogs:          dialogs,
		clip:             clip,
		SaveModelFactory: dialog.NewSaveModel,
		OpenModelFactory: dialog.NewOpenModel,
	}
}

// NewProject replaces the current project with a fresh one carrying an
// empty product. The new project has no file association, so the first
// Save will prompt for a destination.
func (c *Controller) NewProject() *model.Project {
	c.mu.Lock()
	p := model.NewProject()
	c.install(p)
	c.mu.Unlock()

	_ = logAction("PROJECT_NEW", "blank project")
	c.Notify()
	return p
}

// CanSave reports whether Save may persist anything: a project exists, it
// has a product, and the product name is non-blank after trimming. That is
// the whole gating rule; key material is not required for saving.
func (c *Controller) CanSave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSaveLocked()
}

// Save persists the current project. The first save of a project asks for
// a destination through the dialog gateway; every later save reuses that
// destination silently. The association advances only once the file has
// actually been written: a cancelled dialog or a failed write leaves the
// controller exactly as it was, so the next Save starts over.
//
// The boolean distinguishes "saved" from "cancelled by the user" (false,
// nil); errors cover everything that went wrong mechanically.
func (c *Controller) Save() (bool, error) {
	c.mu.Lock()
	path, saved, err := c.saveLocked()
	name := c.productNameLocked()
	c.mu.Unlock()

	if saved {
		_ = logAction("PROJECT_SAVE", "file: "+path)
		_ = db.TouchRecentProject(path, name)
		c.Notify()
	}
	return saved, err
}

// Open loads a project file chosen through the dialog gateway and makes it
// current. The in-memory project is replaced only once loading succeeded
// completely; a cancelled dialog or a corrupt file leaves it untouched.
func (c *Controller) Open() (bool, error) {
	c.mu.Lock()
	path, opened, err := c.openLocked()
	name := c.productNameLocked()
	c.mu.Unlock()

	if opened {
		_ = logAction("PROJECT_OPEN", "file: "+path)
		_ = db.TouchRecentProject(path, name)
		c.Notify()
	}
	return opened, err
}

// OpenPath is Open without the dialog step, for paths that are already
// known: recent projects, command-line arguments.
func (c *Controller) OpenPath(path string) error {
	c.mu.Lock()
	err := c.loadAndInstallLocked(path)
	name := c.productNameLocked()
	c.mu.Unlock()

	if err != nil {
		return err
	}
	_ = logAction("PROJECT_OPEN", "file: "+path)
	_ = db.TouchRecentProject(path, name)
	c.Notify()
	return nil
}

// GenerateKey creates a fresh keypair for the current product and assigns
// both halves in one step, replacing any previous pair. Confirmation UX
// (regenerating throws the old pair away) is the caller's job; here a
// missing project or product is an error, never a silent no-op.
func (c *Controller) GenerateKey() error {
	c.mu.Lock()
	if c.project == nil {
		c.mu.Unlock()
		return ErrNoProject
	}
	product := c.project.Product()
	if product == nil {
		c.mu.Unlock()
		return ErrNoProduct
	}
	publicKey, privateKey, err := c.generator.Generate()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	// The setter fires the product watch, which marks the project dirty
	// and wakes controller subscribers.
	product.SetKeyPair(publicKey, privateKey)
	_ = logAction("KEYPAIR_GENERATED", "product: "+product.Name())
	return nil
}

// CopyToClipboard hands text to the clipboard sink verbatim. No trimming,
// no reformatting: what the caller passes is what a paste will produce.
func (c *Controller) CopyToClipboard(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clip.SetText(text)
}

// Current returns the project under edit, nil before the first NewProject
// or Open.
func (c *Controller) Current() *model.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.project
}

// Dirty reports whether the product changed since the last save, open or
// NewProject.
func (c *Controller) Dirty() bool {
	return c.dirty.Load()
}

func (c *Controller) canSaveLocked() bool {
	if c.project == nil {
		return false
	}
	product := c.project.Product()
	return product != nil && strings.TrimSpace(product.Name()) != ""
}

func (c *Controller) saveLocked() (string, bool, error) {
	if !c.canSaveLocked() {
		return "", false, ErrNotSaveable
	}

	path := c.project.AssociatedFile()
	if path == "" {
		m := c.SaveModelFactory()
		if err := c.dialogs.ShowSaveDialog(&m); err != nil {
			return "", false, err
		}
		if !m.Confirmed || m.FileName == "" {
			// Cancelled. Nothing was written and no destination is
			// remembered, so a later Save prompts again.
			return "", false, nil
		}
		path = m.FileName
	}

	if err := c.store.Save(c.project, path); err != nil {
		// The association stays behind on failure too; a retry must not
		// silently reuse a destination that never worked.
		return "", false, err
	}
	c.project.SetAssociatedFile(path)
	c.dirty.Store(false)
	return path, true, nil
}

func (c *Controller) openLocked() (string, bool, error) {
	m := c.OpenModelFactory()
	if err := c.dialogs.ShowOpenDialog(&m); err != nil {
		return "", false, err
	}
	if !m.Confirmed || m.FileName == "" {
		return "", false, nil
	}
	if err := c.loadAndInstallLocked(m.FileName); err != nil {
		return "", false, err
	}
	return m.FileName, true, nil
}

func (c *Controller) loadAndInstallLocked(path string) error {
	loaded, err := c.store.Load(path)
	if err != nil {
		return err
	}
	loaded.SetAssociatedFile(path)
	c.install(loaded)
	return nil
}

// install replaces the current project wholesale. Caller holds mu.
func (c *Controller) install(p *model.Project) {
	c.project = p
	c.watch(p)
	c.dirty.Store(false)
}

// watch forwards change events from the current product to controller
// subscribers and marks the project dirty. Caller holds mu. The callback
// itself takes no controller lock, so setters may fire it from inside a
// controller operation without deadlocking.
func (c *Controller) watch(p *model.Project) {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	if p == nil {
		return
	}
	product := p.Product()
	if product == nil {
		return
	}
	c.unwatch = product.Subscribe(func() {
		c.dirty.Store(true)
		c.Notify()
	})
}

func (c *Controller) productNameLocked() string {
	if c.project == nil {
		return ""
	}
	if p := c.project.Product(); p != nil {
		return p.Name()
	}
	return ""
}
