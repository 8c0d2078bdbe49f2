package main

import (
	"context"
	"net/http"
	"time"

	"bingo-hall/internal/config"
	"bingo-hall/internal/docstore"
	"bingo-hall/internal/ledger"
	"bingo-hall/internal/logging"
	"bingo-hall/internal/store"
	httptransport "bingo-hall/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	db, err := openDB(cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	st := store.New(db)
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("store ping failed")
	}
	seedSuperAdmin(st, cfg.Server.SuperAdminName)

	led := ledger.New(st)
	r := httptransport.NewRouter(st, led)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func openDB(cfg config.ServerConfig) (docstore.DB, error) {
	if cfg.PostgresDSN != "" {
		return docstore.OpenPostgres(context.Background(), cfg.PostgresDSN)
	}
	return docstore.OpenFile(cfg.DataDir)
}

// seedSuperAdmin creates the root account on first start so the hierarchy
// has its unlimited credit source.
func seedSuperAdmin(st *store.Store, name string) {
	ctx := context.Background()
	existing, err := st.ListAccounts(ctx, store.RoleSuperAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("list super-admin accounts failed")
	}
	if len(existing) > 0 {
		return
	}
	acc, err := st.CreateAccount(ctx, name, store.RoleSuperAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("seed super-admin failed")
	}
	log.Info().Str("account_id", acc.ID).Str("name", name).Msg("seeded super-admin account")
}
