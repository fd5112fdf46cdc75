package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/models"
	"github.com/genericodex/Group5-SWConstruction/internal/commons"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type InterestService interface {
	ApplyInterestBatch(ctx context.Context, accountIDs []string, start, end time.Time) (map[string]decimal.Decimal, map[string]error)
}

type InterestController struct {
	service InterestService
}

func NewInterestController(service InterestService) *InterestController {
	return &InterestController{service: service}
}

func (c *InterestController) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	sub := router.PathPrefix("/interest").Subrouter()
	if authMiddleware != nil {
		sub.Use(authMiddleware)
	}
	sub.HandleFunc("/apply", c.apply).Methods(http.MethodPost)
}

func (c *InterestController) apply(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ApplyInterestResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ApplyInterestResponse]("validation failed", err.Error()))
		return
	}

	start, end, _ := req.Period()
	applied, failed := c.service.ApplyInterestBatch(r.Context(), req.AccountIDs, start, end)

	response := models.ApplyInterestResponse{Applied: make(map[string]string, len(applied))}
	for accountID, interest := range applied {
		response.Applied[accountID] = interest.StringFixed(2)
	}
	if len(failed) > 0 {
		response.Failed = make(map[string]string, len(failed))
		for accountID, err := range failed {
			response.Failed[accountID] = err.Error()
		}
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("interest run completed", response))
}
