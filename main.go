// main.go
//
// Entry point for the Waffle cheatsheet server.
// Loads config, opens the board catalog, picks a session store and serves
// the HTTP API.

package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/waffle-cheatsheet/assets"
	"github.com/robalobadob/waffle-cheatsheet/internal/config"
	"github.com/robalobadob/waffle-cheatsheet/internal/daily"
	"github.com/robalobadob/waffle-cheatsheet/internal/httpserver"
	"github.com/robalobadob/waffle-cheatsheet/internal/store"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.DevSecret() {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	db, err := daily.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open catalog")
	}
	defer db.Close()
	if err := daily.Migrate(db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate catalog")
	}
	catalog := daily.NewStore(db)
	if cfg.SeedSamples {
		seedSamples(catalog)
	}

	var sessions store.Store
	if cfg.RedisAddr != "" {
		rs := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, store.WithTTL(cfg.SessionTTL))
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rs.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		defer rs.Close()
		sessions = rs
		log.Info().Str("addr", cfg.RedisAddr).Msg("sessions in redis")
	} else {
		sessions = store.NewMemoryStore(cfg.SessionTTL)
	}

	srv := httpserver.New(httpserver.Options{
		Sessions:     sessions,
		Catalog:      catalog,
		Secret:       cfg.JWTSecret,
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.ClientOrigin,
		SessionTTL:   cfg.SessionTTL,
	})
	log.Info().Str("port", cfg.Port).Msg("starting waffle-cheatsheet")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// seedSamples imports the bundled boards; boards already present are skipped.
func seedSamples(catalog *daily.Store) {
	boards, err := assets.SampleBoards()
	if err != nil {
		log.Error().Err(err).Msg("load sample boards")
		return
	}
	added := 0
	for _, b := range boards {
		_, ok, err := catalog.Add(context.Background(), b)
		if err != nil {
			log.Warn().Err(err).Str("board", b.Name).Msg("skip sample board")
			continue
		}
		if ok {
			added++
		}
	}
	log.Info().Int("added", added).Int("samples", len(boards)).Msg("seeded catalog")
}
