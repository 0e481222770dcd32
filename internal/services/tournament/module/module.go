// Package module wires the tournament into the API using modkit
package module

import (
	"net/http"

	modkit "inkarena/internal/modkit"
	"inkarena/internal/modkit/httpkit"
	str "inkarena/internal/platform/strings"
	tourndom "inkarena/internal/services/tournament/domain"
	tournhttp "inkarena/internal/services/tournament/http"
	tournrepo "inkarena/internal/services/tournament/repo"
	tournsvc "inkarena/internal/services/tournament/service"
)

// Module implements the tournament module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *tournsvc.Svc
}

// New constructs the tournament module
func New(deps modkit.Deps, collab tournsvc.Collaborators, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("tournament"), modkit.WithPrefix("/tournament")}, opts...)...)

	cfg := tourndom.ConfigFromEnv(deps.Cfg)
	svc := tournsvc.New(deps.KV, tournrepo.NewKV(), cfg, collab)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = svc

	external := b.Register
	m.register = func(r httpkit.Router) {
		tournhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service returns the concrete service for job wiring
func (m *Module) Service() *tournsvc.Svc { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
