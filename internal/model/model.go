// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the in-memory entities shared across Licmaster: the
// license project and its product, plus the records kept in the workbench
// database (audit trail, recent projects).
package model

import (
	"fmt"
	"sync"
	"time"
)

// Product is a licensed item identified by name. It carries the asymmetric
// keypair whose private half signs issued licenses and whose public half
// verifies them. Both key fields hold serialized key text; they are set
// together by SetKeyPair and are empty until a keypair has been generated.
//
// Mutations notify subscribers registered through the embedded Observable.
type Product struct {
	Observable

	mu         sync.RWMutex
	name       string
	publicKey  string
	privateKey string
}

// NewProduct returns a product with the given name and no keypair.
func NewProduct(name string) *Product {
	return &Product{name: name}
}

// Name returns the product name.
func (p *Product) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// SetName updates the product name and notifies subscribers when it changed.
func (p *Product) SetName(name string) {
	p.mu.Lock()
	changed := p.name != name
	p.name = name
	p.mu.Unlock()
	if changed {
		p.Notify()
	}
}

// PublicKey returns the serialized public key, or "" when none was generated.
func (p *Product) PublicKey() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.publicKey
}

// PrivateKey returns the serialized private key, or "" when none was generated.
func (p *Product) PrivateKey() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.privateKey
}

// SetKeyPair assigns both key halves in one step. A keypair is never
// partially populated: there is deliberately no setter for a single half.
func (p *Product) SetKeyPair(publicKey, privateKey string) {
	p.mu.Lock()
	changed := p.publicKey != publicKey || p.privateKey != privateKey
	p.publicKey = publicKey
	p.privateKey = privateKey
	p.mu.Unlock()
	if changed {
		p.Notify()
	}
}

// HasKeyPair reports whether a keypair has been generated for this product.
func (p *Product) HasKeyPair() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.publicKey != "" && p.privateKey != ""
}

// String returns the product name with a short keypair status.
func (p *Product) String() string {
	if p.HasKeyPair() {
		return fmt.Sprintf("%s (keypair present)", p.Name())
	}
	return fmt.Sprintf("%s (no keypair)", p.Name())
}

// Project is the unit of persistence. It holds exactly one product in this
// scope, plus the file path the project was last saved to or opened from.
//
// The associated file is save/open bookkeeping, not project content: it is
// never serialized into the project file and changing it does not notify.
type Project struct {
	Observable

	mu             sync.RWMutex
	product        *Product
	associatedFile string
}

// NewProject returns a fresh project carrying a single empty product.
func NewProject() *Project {
	return &Project{product: NewProduct("")}
}

// Product returns the project's product.
func (pr *Project) Product() *Product {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.product
}

// SetProduct replaces the project's product and notifies subscribers.
func (pr *Project) SetProduct(p *Product) {
	pr.mu.Lock()
	pr.product = p
	pr.mu.Unlock()
	pr.Notify()
}

// AssociatedFile returns the destination last used to save this project, or
// the source it was opened from. Empty for a project never saved or opened.
func (pr *Project) AssociatedFile() string {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	return pr.associatedFile
}

// SetAssociatedFile records the save/open path. Bookkeeping only; does not notify.
func (pr *Project) SetAssociatedFile(path string) {
	pr.mu.Lock()
	pr.associatedFile = path
	pr.mu.Unlock()
}

// AuditLogEntry represents a single entry in the audit trail.
type AuditLogEntry struct {
	ID        int    `json:"id"`
	Timestamp string `json:"timestamp"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// RecentProject points at a project file the user recently saved or opened.
type RecentProject struct {
	ID           int       `json:"id"`
	Path         string    `json:"path"`
	ProductName  string    `json:"product_name"`
	LastOpenedAt time.Time `json:"last_opened_at"`
}

// String returns the product name with the file path, e.g. "Rhino (./rhino.rlic)".
func (r RecentProject) String() string {
	if r.ProductName == "" {
		return r.Path
	}
	return fmt.Sprintf("%s (%s)", r.ProductName, r.Path)
}
