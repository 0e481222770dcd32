// Package module wires boosts into the API using modkit
package module

import (
	"net/http"

	modkit "inkarena/internal/modkit"
	"inkarena/internal/modkit/httpkit"
	str "inkarena/internal/platform/strings"
	boostshttp "inkarena/internal/services/boosts/http"
	boostsrepo "inkarena/internal/services/boosts/repo"
	boostssvc "inkarena/internal/services/boosts/service"
	hostdom "inkarena/internal/services/host/domain"
)

// Module implements the boosts module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *boostssvc.Svc
}

// New constructs the boosts module
func New(deps modkit.Deps, realtime hostdom.RealtimePort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("boosts"), modkit.WithPrefix("/boosts")}, opts...)...)

	svc := boostssvc.New(deps.KV, boostsrepo.NewKV(), realtime)

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
		boostshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Service returns the concrete service for intra-process callers
func (m *Module) Service() *boostssvc.Svc { return m.svc }

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
