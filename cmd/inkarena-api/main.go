// @title         Inkarena API
// @version       0.1.0
// @description   Drawing game engine: word slates, tournaments, progression

package main

import (
	"context"

	"inkarena/internal/modkit/httpkit"
	"inkarena/internal/platform/config"
	"inkarena/internal/platform/logger"
	phttp "inkarena/internal/platform/net/http"
	"inkarena/internal/platform/store"

	"inkarena/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	kvCfg := root.Prefix("SERVICE_REDIS_") // kvCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	// open the platform store (redis KV)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "inkarena",
			Redis: store.RedisConfig{
				Enabled: true,
				URL:     kvCfg.MayString("URL", ""),
				Addr:    kvCfg.MayString("ADDR", "127.0.0.1:6379"),
				DB:      kvCfg.MayInt("DB", 0),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// bearer tokens are opaque user ids until the platform auth adapter
	// lands; moderation routes still demand a token be present
	auth := httpkit.NewPortFunc(func(token string) (string, string, error) {
		return token, "", nil
	})

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
			Auth:           auth,
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
