package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, opts Options, creds adminCreds) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Cycling Imposter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, opts.DB, opts.Redis))

	// Player routes — device resolved by deviceMiddleware.
	r.Route("/api/puzzle", func(r chi.Router) {
		r.Get("/today", handlePuzzleToday(logger, opts.Store, opts.Clock))
		r.Get("/today/global", handleGlobalStats(logger, opts.Redis, opts.Clock))
	})
	r.Route("/api/game", func(r chi.Router) {
		r.Use(deviceMiddleware())
		r.Get("/state", handleGameState(logger, opts.DB, opts.Store, opts.Clock))
		r.Post("/submit", handleSubmit(logger, opts.DB, opts.Store, opts.Clock, broker, opts.Redis))
		r.Get("/share", handleShare(opts.DB, opts.Clock))
	})

	// Admin auth.
	r.Post("/api/admin/login", handleAdminLogin(opts.Store, creds))
	r.Post("/api/admin/logout", handleAdminLogout(opts.Store))
	r.Get("/api/admin/me", handleAdminMe(opts.Store, creds))
	r.Get("/api/admin/events", handleAdminEvents(opts.Store, broker))

	// Admin catalog — requires admin session.
	r.Route("/api/admin/cyclists", func(r chi.Router) {
		r.Use(adminAuthMiddleware(opts.Store))
		r.Get("/", handleAdminListCyclists(opts.Store))
		r.Post("/", handleAdminCreateCyclist(opts.Store))
		r.Put("/{id}", handleAdminUpdateCyclist(opts.Store))
		r.Delete("/{id}", handleAdminDeleteCyclist(opts.Store))
	})
	r.Route("/api/admin/puzzles", func(r chi.Router) {
		r.Use(adminAuthMiddleware(opts.Store))
		r.Get("/{date}", handleAdminGetPuzzle(opts.Store))
		r.Put("/{date}", handleAdminUpsertPuzzle(opts.Store))
	})

	if opts.SPADir != "" {
		if info, err := os.Stat(opts.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", opts.SPADir)
			r.NotFound(handleSPA(opts.SPADir))
		}
	}
}
