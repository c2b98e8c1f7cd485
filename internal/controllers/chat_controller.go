package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pentlavallir/Landscaping-US/internal/dtos"
	"github.com/pentlavallir/Landscaping-US/internal/services"
	"github.com/pentlavallir/Landscaping-US/internal/utils"
)

// ChatController serves the assistant endpoint shared by admins and
// owners. The caller's full user record is loaded so the chat service
// can scope its data snapshot to the caller's role and property.
type ChatController struct {
	chat     services.ChatService
	users    *services.UserService
	validate *validator.Validate
}

func NewChatController(chat services.ChatService, users *services.UserService) *ChatController {
	return &ChatController{chat: chat, users: users, validate: validator.New()}
}

// POST /api/v1/chat
func (c *ChatController) ChatHandler(w http.ResponseWriter, r *http.Request) {
	id, err := callerID(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		return
	}

	user, err := c.users.Get(r.Context(), id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	answer, err := c.chat.Ask(r.Context(), user, req.Question)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ChatResponse{Answer: answer})
}
