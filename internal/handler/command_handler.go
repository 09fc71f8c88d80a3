package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/latch-net/latch-be/internal/model"
	"github.com/latch-net/latch-be/internal/service"
)

// CommandService is the contract the command handler depends on. The handler
// depends on this interface, not on the concrete implementation.
type CommandService interface {
	Lock(ctx context.Context, userID int) (*model.DTOCommandResult, error)
	Unlock(ctx context.Context, userID int) (*model.DTOCommandResult, error)
	Send(ctx context.Context, userID int, req *model.DTOSendRequest) (*model.DTOCommandResult, error)
	History(ctx context.Context, userID int) ([]*model.CommandRecord, error)
}

type CommandHandler struct {
	service CommandService
	logger  *log.Logger
}

func NewCommandHandler(s CommandService, l *log.Logger) *CommandHandler {
	return &CommandHandler{
		service: s,
		logger:  l,
	}
}

func (h *CommandHandler) Lock(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	result, err := h.service.Lock(r.Context(), claims.ID)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (h *CommandHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	result, err := h.service.Unlock(r.Context(), claims.ID)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (h *CommandHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	var req model.DTOSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	result, err := h.service.Send(r.Context(), claims.ID, &req)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondWithJson(w, http.StatusOK, result)
}

func (h *CommandHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not found in context")
		return
	}

	records, err := h.service.History(r.Context(), claims.ID)
	if err != nil {
		h.logger.Printf("ERROR: failed to load command history: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load command history")
		return
	}
	if records == nil {
		records = []*model.CommandRecord{}
	}
	respondWithJson(w, http.StatusOK, records)
}

// respondCommandError translates the command service's sentinel errors to
// status codes.
func (h *CommandHandler) respondCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRateLimited):
		respondWithError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, service.ErrDeviceBusy):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Printf("ERROR: %v", err)
		respondWithError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
