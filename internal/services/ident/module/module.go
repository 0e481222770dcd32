// Package module wires ident into the app using modkit
package module

import (
	modkit "inkarena/internal/modkit"
	str "inkarena/internal/platform/strings"
	hostdom "inkarena/internal/services/host/domain"
	identsvc "inkarena/internal/services/ident/service"
)

// Module implements the ident module; it exposes ports only, no routes
type Module struct {
	deps  modkit.Deps
	name  string
	ports any

	svc identsvc.Service
}

// New constructs the ident module over the host identity port
func New(deps modkit.Deps, identity hostdom.IdentityPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ident")}, opts...)...)

	svc := identsvc.New(deps.KV, identity)

	return &Module{deps: deps, name: b.Name, ports: svc, svc: svc}
}

// Service returns the concrete service for intra-process callers
func (m *Module) Service() identsvc.Service { return m.svc }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
