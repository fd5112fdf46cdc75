package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/models"
	"github.com/genericodex/Group5-SWConstruction/internal/commons"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (domain.Transaction, error)
	Transfer(ctx context.Context, sourceID, destID string, amount decimal.Decimal) (domain.Transaction, error)
	GetTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

type LedgerController struct {
	service LedgerService
}

func NewLedgerController(service LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	sub := router.PathPrefix("/ledger").Subrouter()
	if authMiddleware != nil {
		sub.Use(authMiddleware)
	}
	sub.HandleFunc("/deposit", c.deposit).Methods(http.MethodPost)
	sub.HandleFunc("/withdraw", c.withdraw).Methods(http.MethodPost)
	sub.HandleFunc("/transfer", c.transfer).Methods(http.MethodPost)
	sub.HandleFunc("/accounts/{id}/transactions", c.transactions).Methods(http.MethodGet)
}

func (c *LedgerController) deposit(w http.ResponseWriter, r *http.Request) {
	c.postFunds(w, r, c.service.Deposit)
}

func (c *LedgerController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.postFunds(w, r, c.service.Withdraw)
}

func (c *LedgerController) postFunds(w http.ResponseWriter, r *http.Request, op func(context.Context, string, decimal.Decimal) (domain.Transaction, error)) {
	var req models.PostFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	tx, err := op(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.TransactionResponse]("failed to post transaction", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("transaction posted successfully", models.NewTransactionResponse(tx)))
}

func (c *LedgerController) transfer(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()))
		return
	}

	tx, err := c.service.Transfer(r.Context(), req.SourceAccountID, req.DestinationAccountID, req.Amount)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.TransactionResponse]("failed to transfer funds", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("transfer completed successfully", models.NewTransactionResponse(tx)))
}

func (c *LedgerController) transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := c.service.GetTransactions(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.TransactionResponse]("failed to fetch transactions", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("transactions fetched successfully", models.NewTransactionResponses(txs)))
}
