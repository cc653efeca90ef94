package stream

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	chatService "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
	"github.com/zhouzirui/ward-bot/backend/pkg/utils"
)

// Handler 通过Server-Sent Events推送引擎响应
type Handler struct {
	chatSvc *chatService.Service
	log     zerolog.Logger
}

// New 创建流式处理器
func New(chatSvc *chatService.Service, log zerolog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		log:     log.With().Str("component", "stream").Logger(),
	}
}

// RegisterRoutes 注册 GET /stream/{sessionID}?message=...
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

// StreamResponse 结束事件 done 的数据
type StreamResponse struct {
	Event     string `json:"event"`
	SessionID string `json:"sessionId,omitempty"`
	TurnCount int    `json:"turnCount"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	message := r.URL.Query().Get("message")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	resp, err := h.chatSvc.Send(r.Context(), sessionID, message)
	if err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			utils.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("stream send failed")
		utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
		return
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	if err := utils.SendSSEEvent(w, flusher, "response", resp); err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("client went away")
		return
	}
	_ = utils.SendSSEEvent(w, flusher, "done", StreamResponse{
		Event:     "done",
		SessionID: sessionID,
		TurnCount: resp.TurnCount,
		Finished:  true,
	})
}
