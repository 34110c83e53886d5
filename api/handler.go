package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"client-ledger/app"
	"client-ledger/domain"
	"client-ledger/shared"
)

const healthMessage = "Client ledger is up"

type LedgerHandler struct {
	service *app.LedgerService
	logger  *zap.Logger
}

func NewLedgerHandler(s *app.LedgerService, l *zap.Logger) *LedgerHandler {
	return &LedgerHandler{service: s, logger: l}
}

func (h *LedgerHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, GenericResponse{Status: statusSuccess, Message: healthMessage})
}

func (h *LedgerHandler) NewClientHandler(w http.ResponseWriter, r *http.Request) {
	var req NewClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for new client", zap.Error(err))
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Profile.Validate(); err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreateAccount(r.Context(), app.CreateAccountCommand{Profile: req.Profile})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SingleResponse{Status: statusSuccess, Data: CreateClientResponse{ID: id}})
}

func (h *LedgerHandler) NewCreditTransactionHandler(w http.ResponseWriter, r *http.Request) {
	h.transaction(w, r, h.service.Credit)
}

func (h *LedgerHandler) NewDebitTransactionHandler(w http.ResponseWriter, r *http.Request) {
	h.transaction(w, r, h.service.Debit)
}

func (h *LedgerHandler) transaction(w http.ResponseWriter, r *http.Request,
	apply func(context.Context, app.TransactionCommand) (app.TransactionResult, error)) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for transaction", zap.Error(err))
		h.fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ClientID == "" {
		h.fail(w, http.StatusBadRequest, "client_id is required")
		return
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := apply(r.Context(), app.TransactionCommand{AccountID: req.ClientID, Amount: amount})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SingleResponse{
		Status: statusSuccess,
		Data: TransactionResponse{
			ClientID:   result.AccountID,
			NewBalance: shared.FormatAmount(result.NewBalance),
		},
	})
}

func (h *LedgerHandler) ClientBalanceHandler(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "client_id")
	if clientID == "" {
		h.fail(w, http.StatusBadRequest, "client_id is required")
		return
	}

	account, err := h.service.GetAccount(r.Context(), app.GetAccountQuery{AccountID: clientID})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SingleResponse{Status: statusSuccess, Data: newClientResponse(account)})
}

func (h *LedgerHandler) StoreBalancesHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.StoreBalances(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, SingleResponse{
		Status: statusSuccess,
		Data: StoreBalancesResponse{
			File:    filepath.Base(result.Path),
			Total:   shared.FormatAmount(shared.Sum(result.Records)),
			Records: newBalanceRecords(result.Records),
		},
	})
}

// writeError maps ledger errors onto HTTP statuses. Anything that is not a
// known domain error is logged and hidden behind a 500.
func (h *LedgerHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		h.fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound):
		h.fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateIdentity), errors.Is(err, domain.ErrInsufficientFunds):
		h.fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStorageFailure):
		h.logger.Error("Snapshot storage failed", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, "Failed to store balances")
	default:
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			h.fail(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Request failed", zap.Error(err))
		h.fail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *LedgerHandler) fail(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, GenericResponse{Status: statusFail, Message: message})
}

func (h *LedgerHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}
