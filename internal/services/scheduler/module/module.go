// Package module wires the scheduler into the app using modkit
package module

import (
	modkit "inkarena/internal/modkit"
	str "inkarena/internal/platform/strings"
	schedrepo "inkarena/internal/services/scheduler/repo"
	schedsvc "inkarena/internal/services/scheduler/service"
)

// Module implements the scheduler module; ports only, no routes
type Module struct {
	deps  modkit.Deps
	name  string
	ports any

	svc schedsvc.Service
}

// New constructs the scheduler module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("scheduler")}, opts...)...)

	svc := schedsvc.New(deps.KV, schedrepo.NewKV())

	return &Module{deps: deps, name: b.Name, ports: svc, svc: svc}
}

// Service returns the concrete service for wiring handlers and the runner
func (m *Module) Service() schedsvc.Service { return m.svc }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
