package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fakhrymubarak/weather-chatbot/internal/config"
	"github.com/fakhrymubarak/weather-chatbot/internal/engine"
	"github.com/fakhrymubarak/weather-chatbot/internal/gateway"
	"github.com/fakhrymubarak/weather-chatbot/internal/model"
)

// ChatHandler exposes the conversation engine over HTTP: one POST per
// inbound user message, answered with the ordered replies the engine
// produced for it.
type ChatHandler struct {
	Engine *engine.Engine
}

func NewChatHandler(e *engine.Engine) *ChatHandler {
	return &ChatHandler{Engine: e}
}

type chatRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type chatReply struct {
	Messages []model.ChatMessage `json:"messages"`
}

func (h *ChatHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errMsg := "Method not allowed"
		w.Header().Set("Allow", http.MethodPost)
		h.writeJSONResponse(w, http.StatusMethodNotAllowed, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errMsg := "Invalid request body"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}
	if req.UserID == 0 {
		errMsg := "Missing 'user_id' field"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{
			Error:   &errMsg,
			Message: "Error",
		})
		return
	}

	rec := &gateway.Recorder{}
	h.Engine.Handle(r.Context(), rec, req.UserID, req.Text)

	h.writeJSONResponse(w, http.StatusOK, model.Response{
		Data:    chatReply{Messages: rec.Messages},
		Message: "Success",
	})
}

// HandleHealth reports liveness.
func (h *ChatHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, model.Response{Message: "OK"})
}
