package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	chatService "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
	"github.com/zhouzirui/ward-bot/backend/pkg/utils"
)

// Handler 聊天会话与消息的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes 注册会话与消息路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}", func(r chi.Router) {
		r.Get("/", h.handleGetSession)
		r.Delete("/", h.handleEndSession)
		r.Post("/messages", h.handleSessionMessage)
		r.Get("/summary", h.handleSummary)
		r.Get("/history", h.handleHistory)
		r.Get("/help", h.handleHelp)
	})
	r.Post("/messages", h.handleMessage)
}

type summaryPayload struct {
	Empty   bool         `json:"empty"`
	Text    string       `json:"text"`
	Summary chat.Summary `json:"summary"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMessage 处理请求体携带 {sessionId, text} 的消息
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	h.send(w, r, payload.SessionID, payload.Text)
}

// handleSessionMessage 处理路径中会话的 {text} 消息
func (h *Handler) handleSessionMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.send(w, r, chi.URLParam(r, "sessionID"), payload.Text)
}

// send 始终以200返回引擎响应，空文本返回 ERROR 分类而非HTTP错误
func (h *Handler) send(w http.ResponseWriter, r *http.Request, sessionID, text string) {
	resp, err := h.chatSvc.Send(r.Context(), sessionID, text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.chatSvc.Summary(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summaryPayload{
		Empty:   summary.Empty(),
		Text:    summary.String(),
		Summary: summary,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	turns, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, turns)
}

func (h *Handler) handleHelp(w http.ResponseWriter, r *http.Request) {
	resp, err := h.chatSvc.Help(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, chatService.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
