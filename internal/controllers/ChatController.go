package controllers

import (
	"net/http"

	"nest/internal/models"
	"nest/internal/providers"
	"nest/internal/services"
)

type ChatController struct {
	logger  providers.Logger
	service services.ChatServiceInterface
}

func NewChatController(logger providers.Logger, service services.ChatServiceInterface) *ChatController {
	return &ChatController{logger: logger, service: service}
}

func (cc *ChatController) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	resp, err := cc.service.Chat(r.Context(), &req)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (cc *ChatController) EndSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	resp, err := cc.service.EndSession(r.Context(), id)
	if err != nil {
		writeError(w, cc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
