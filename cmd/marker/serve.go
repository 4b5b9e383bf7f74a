package main

import (
	"context"
	"log"
	"net/http"

	"github.com/markerhq/marker/internal/api"
	"github.com/markerhq/marker/internal/auth"
	"github.com/markerhq/marker/internal/bookmarks"
	"github.com/markerhq/marker/internal/cache"
	"github.com/markerhq/marker/internal/config"
	"github.com/markerhq/marker/internal/db"
	"github.com/markerhq/marker/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			kv, err := newCacheBackend(cfg)
			if err != nil {
				return err
			}

			tagStore := store.NewTagStore(database)
			bookmarkStore := store.NewBookmarkStore(database, tagStore)
			svc := bookmarks.NewService(bookmarkStore, cache.New(kv))

			authenticator := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.TokenTTL)

			router := api.NewRouter(api.Deps{
				BearerAuth: auth.NewMiddleware(authenticator),
				Bookmarks:  svc,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}

// newCacheBackend builds the cache KV from config. Redis connectivity is
// verified at startup so a misconfigured address fails fast instead of
// degrading every request to a miss.
func newCacheBackend(cfg *config.Config) (cache.KV, error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemory(), nil
	}
	r := cache.NewRedis(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
	if err := r.Ping(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}
