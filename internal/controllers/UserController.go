package controllers

import (
	"net/http"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/services"
)

type UserController struct {
	logger  providers.Logger
	service services.UserServiceInterface
}

func NewUserController(logger providers.Logger, service services.UserServiceInterface) *UserController {
	return &UserController{logger: logger, service: service}
}

func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, uc.logger, r, err)
		return
	}
	user, err := uc.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, uc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (uc *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, uc.logger, r, err)
		return
	}
	user, err := uc.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, uc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
