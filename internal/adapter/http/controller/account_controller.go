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

type AccountService interface {
	OpenAccount(ctx context.Context, kind domain.AccountKind, initialDeposit decimal.Decimal, tier domain.NotificationTier) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	CloseAccount(ctx context.Context, id string) error
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	sub := router.PathPrefix("/accounts").Subrouter()
	if authMiddleware != nil {
		sub.Use(authMiddleware)
	}
	sub.HandleFunc("", c.openAccount).Methods(http.MethodPost)
	sub.HandleFunc("", c.listAccounts).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", c.getAccount).Methods(http.MethodGet)
	sub.HandleFunc("/{id}/close", c.closeAccount).Methods(http.MethodPost)
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.OpenAccount(r.Context(), req.AccountKind(), req.InitialDeposit, req.NotificationTier())
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to open account", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("account opened successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := c.service.GetAccount(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.AccountResponse]("failed to get account", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.service.ListAccounts(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", err.Error()))
		return
	}

	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, models.NewAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("accounts fetched successfully", out))
}

func (c *AccountController) closeAccount(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.service.CloseAccount(r.Context(), id); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to close account", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("account closed successfully", struct{}{}))
}
