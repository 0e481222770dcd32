// Package module wires the dictionary into the API using modkit
package module

import (
	"net/http"

	modkit "inkarena/internal/modkit"
	"inkarena/internal/modkit/httpkit"
	"inkarena/internal/platform/net/middleware"
	str "inkarena/internal/platform/strings"
	dicthttp "inkarena/internal/services/dictionary/http"
	dictrepo "inkarena/internal/services/dictionary/repo"
	dictsvc "inkarena/internal/services/dictionary/service"
)

// Module implements the dictionary module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc dictsvc.Service
}

// New constructs the dictionary module
// auth guards the moderation endpoints; nil passes through
func New(deps modkit.Deps, auth middleware.AuthPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dictionary"), modkit.WithPrefix("/words")}, opts...)...)

	svc := dictsvc.New(deps.KV, dictrepo.NewKV())

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
		dicthttp.Register(r, m.svc, auth)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service returns the concrete service for intra-process callers
func (m *Module) Service() dictsvc.Service { return m.svc }

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
