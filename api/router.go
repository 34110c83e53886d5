package api

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"client-ledger/app"
)

func RegisterRoutes(r chi.Router, s *app.LedgerService, l *zap.Logger) {
	handler := NewLedgerHandler(s, l.With(zap.String("component", "LedgerHTTPHandler")))

	r.Route("/app", func(r chi.Router) {
		r.Get("/healthchecker", handler.HealthCheckHandler)
		r.Post("/new_client", handler.NewClientHandler)
		r.Post("/new_credit_transaction", handler.NewCreditTransactionHandler)
		r.Post("/new_debit_transaction", handler.NewDebitTransactionHandler)
		r.Get("/client_balance/{client_id}", handler.ClientBalanceHandler)
		r.Post("/store_balances", handler.StoreBalancesHandler)
	})
}
