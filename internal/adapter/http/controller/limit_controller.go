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

type LimitService interface {
	GetStatus(ctx context.Context, accountID string) (domain.TransactionLimits, domain.LimitUsage, error)
	UpdateLimits(ctx context.Context, accountID string, daily, monthly decimal.Decimal) error
	ResetDaily(ctx context.Context, accountID string) error
	ResetMonthly(ctx context.Context, accountID string) error
}

type LimitController struct {
	service LimitService
}

func NewLimitController(service LimitService) *LimitController {
	return &LimitController{service: service}
}

func (c *LimitController) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	sub := router.PathPrefix("/limits").Subrouter()
	if authMiddleware != nil {
		sub.Use(authMiddleware)
	}
	sub.HandleFunc("/{accountId}", c.getStatus).Methods(http.MethodGet)
	sub.HandleFunc("/{accountId}", c.updateLimits).Methods(http.MethodPut)
	sub.HandleFunc("/{accountId}/reset-daily", c.resetDaily).Methods(http.MethodPost)
	sub.HandleFunc("/{accountId}/reset-monthly", c.resetMonthly).Methods(http.MethodPost)
}

func (c *LimitController) getStatus(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["accountId"]
	limits, usage, err := c.service.GetStatus(r.Context(), accountID)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.LimitStatusResponse]("failed to fetch limits", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("limits fetched successfully", models.NewLimitStatusResponse(accountID, limits, usage)))
}

func (c *LimitController) updateLimits(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLimitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[struct{}]("validation failed", err.Error()))
		return
	}

	accountID := mux.Vars(r)["accountId"]
	if err := c.service.UpdateLimits(r.Context(), accountID, req.DailyLimit, req.MonthlyLimit); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to update limits", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("limits updated successfully", struct{}{}))
}

func (c *LimitController) resetDaily(w http.ResponseWriter, r *http.Request) {
	if err := c.service.ResetDaily(r.Context(), mux.Vars(r)["accountId"]); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to reset daily usage", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("daily usage reset", struct{}{}))
}

func (c *LimitController) resetMonthly(w http.ResponseWriter, r *http.Request) {
	if err := c.service.ResetMonthly(r.Context(), mux.Vars(r)["accountId"]); err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[struct{}]("failed to reset monthly usage", err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, commons.SuccessResponse("monthly usage reset", struct{}{}))
}
