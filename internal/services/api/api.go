// Package api provides the HTTP API for the application
package api

import (
	stdhttp "net/http"

	"inkarena/internal/platform/config"
	perr "inkarena/internal/platform/errors"
	"inkarena/internal/platform/logger"
	phttp "inkarena/internal/platform/net/http"
	"inkarena/internal/platform/net/middleware"
	"inkarena/internal/platform/store"

	"inkarena/internal/modkit"
	"inkarena/internal/modkit/httpkit"
	"inkarena/internal/modkit/module"

	metamod "inkarena/internal/services/api/meta/module"
	boostsmod "inkarena/internal/services/boosts/module"
	dictmod "inkarena/internal/services/dictionary/module"
	dictsvc "inkarena/internal/services/dictionary/service"
	hostdevnull "inkarena/internal/services/host/devnull"
	identmod "inkarena/internal/services/ident/module"
	progmod "inkarena/internal/services/progression/module"
	schedmod "inkarena/internal/services/scheduler/module"
	slatemod "inkarena/internal/services/slate/module"
	tournmod "inkarena/internal/services/tournament/module"
	tournsvc "inkarena/internal/services/tournament/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableProfiler bool

	// Auth parses bearer tokens into a user and optional community claim.
	// nil leaves protected routes open, which is only sane in dev
	Auth middleware.AuthPort
}

// communityScope checks a token's community claim against the registry
type communityScope struct{ dict dictsvc.Service }

func (c communityScope) Validate(r *stdhttp.Request, communityID string) error {
	if communityID == "" {
		return nil // token carries no community claim
	}
	ok, err := c.dict.CommunityExists(r.Context(), communityID)
	if err != nil {
		return err
	}
	if !ok {
		return perr.Forbiddenf("unknown community %q", communityID)
	}
	return nil
}

// Mount mounts the API service onto the given router.
// Module construction order follows the dependency graph: host ports
// feed ident and boosts, the scheduler feeds progression and the
// tournament, progression feeds the tournament.
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		KV:  opt.Store.KV,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	host := hostdevnull.Ports()

	identM := identmod.New(deps, host.Identity)
	schedM := schedmod.New(deps)
	dictM := dictmod.New(deps, opt.Auth)
	slateM := slatemod.New(deps)
	// boosts routes are personal, the whole module sits behind auth with
	// the community claim validated against the dictionary registry
	boostsM := boostsmod.New(deps, host.Realtime, modkit.WithMiddlewares(
		httpkit.Auth(opt.Auth),
		httpkit.Communities(communityScope{dict: dictM.Service()}),
	))
	progM := progmod.New(deps, progmod.Collaborators{
		Boosts:    boostsM.Service(),
		Ident:     identM.Service(),
		Scheduler: schedM.Service(),
	})
	tournM := tournmod.New(deps, tournsvc.Collaborators{
		Host:      host,
		Progress:  progM.Service(),
		Scheduler: schedM.Service(),
	})

	// ports-only modules still register for cross-module lookups
	module.Register(identM.Name(), identM.Ports())
	module.Register(schedM.Name(), schedM.Ports())

	routed := []module.Module{
		metamod.New(deps),
		dictM,
		slateM,
		boostsM,
		progM,
		tournM,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range routed {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
