package api

import (
	"github.com/go-chi/chi"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Get("/v1/stake/options", registerHandler(handlers.GetStakeOptions))
	r.Get("/v1/stake/logs", registerHandler(handlers.GetStakeLogs))
	r.Post("/v1/stake", registerHandler(handlers.RecordStake))

	r.Get("/v1/account/score", registerHandler(handlers.GetAccountScore))
	r.Post("/v1/account/verify/primary", registerHandler(handlers.VerifyPrimaryAccount))
	r.Post("/v1/account/verify/secondary", registerHandler(handlers.VerifySecondaryAccount))
	r.Get("/v1/account/balance", registerHandler(handlers.GetAccountBalance))

	r.Get("/v1/price", registerHandler(handlers.GetTokenPrice))
}
