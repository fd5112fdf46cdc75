package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/genericodex/Group5-SWConstruction/internal/adapter/http/models"
	"github.com/genericodex/Group5-SWConstruction/internal/commons"
	"github.com/genericodex/Group5-SWConstruction/internal/domain"
	"github.com/gorilla/mux"
)

type UserService interface {
	RegisterUser(ctx context.Context, username, pin string) (domain.User, error)
	VerifyPin(ctx context.Context, username, pin string) error
}

type UserController struct {
	service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) RegisterRoutes(router *mux.Router, authMiddleware mux.MiddlewareFunc) {
	sub := router.PathPrefix("/users").Subrouter()
	if authMiddleware != nil {
		sub.Use(authMiddleware)
	}
	sub.HandleFunc("", c.registerUser).Methods(http.MethodPost)
	sub.HandleFunc("/verify-pin", c.verifyPin).Methods(http.MethodPost)
}

func (c *UserController) registerUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterUserResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.RegisterUserResponse]("validation failed", err.Error()))
		return
	}

	user, err := c.service.RegisterUser(r.Context(), req.Username, req.Pin)
	if err != nil {
		writeJSON(w, statusForError(err), commons.ErrorResponse[models.RegisterUserResponse]("failed to register user", err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("user registered successfully", models.RegisterUserResponse{
		ID:       user.ID,
		Username: user.Username,
	}))
}

func (c *UserController) verifyPin(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("invalid request body", err.Error()))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.VerifyPinResponse]("validation failed", err.Error()))
		return
	}

	if err := c.service.VerifyPin(r.Context(), req.Username, req.Pin); err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusUnauthorized
		}
		writeJSON(w, status, commons.ErrorResponse[models.VerifyPinResponse]("invalid pin", err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("pin verified successfully", models.VerifyPinResponse{
		Username:   req.Username,
		IsValidPin: true,
	}))
}
