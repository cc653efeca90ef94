package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/command"
	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	chatservice "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
	"github.com/zhouzirui/ward-bot/backend/pkg/utils"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// 下行消息类型
const (
	TypeConnected = "connected"
	TypeResponse  = "response"
	TypeHelp      = "help"
	TypeSummary   = "summary"
	TypeBye       = "bye"
	TypeError     = "error"
)

// Handler WebSocket聊天处理器，控制词（quit、help、summary）在此处理，其余交给引擎
type Handler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// New 创建WebSocket处理器
func New(chatSvc *chatservice.Service, log zerolog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log.With().Str("component", "websocket").Logger(),
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// TextMessage 文本消息
type TextMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// SummaryData 随 summary 与 bye 消息发送的摘要
type SummaryData struct {
	Empty   bool         `json:"empty"`
	Text    string       `json:"text"`
	Summary chat.Summary `json:"summary"`
}

type conn struct {
	mu        sync.Mutex
	ws        *websocket.Conn
	sessionID string
	log       zerolog.Logger
}

func (c *conn) send(msgType string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.ws.WriteJSON(outgoingMessage{
		Type:      msgType,
		SessionID: c.sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		c.log.Warn().Err(err).Str("type", msgType).Msg("write failed")
	}
	return err
}

func (c *conn) sendError(message string) {
	_ = c.send(TypeError, map[string]string{"message": message})
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("upgrade failed")
		return
	}
	defer ws.Close()

	log := h.log.With().Str("session_id", sessionID).Logger()
	c := &conn{ws: ws, sessionID: sessionID, log: log}
	log.Info().Msg("connection opened")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	go pingLoop(ctx, ws)

	if err := c.send(TypeConnected, nil); err != nil {
		return
	}

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		if msg.Type != "text" {
			c.sendError("unsupported message type: " + msg.Type)
			continue
		}
		var text TextMessage
		if err := json.Unmarshal(msg.Data, &text); err != nil {
			c.sendError("invalid text payload")
			continue
		}

		if done := h.handleText(ctx, c, text.Text); done {
			c.mu.Lock()
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(writeWait))
			c.mu.Unlock()
			log.Info().Msg("connection closed by client command")
			return
		}
	}
}

// handleText 处理一条文本，返回会话是否结束
func (h *Handler) handleText(ctx context.Context, c *conn, text string) bool {
	switch command.Parse(text) {
	case command.Quit:
		summary, err := h.chatSvc.Summary(ctx, c.sessionID)
		if err != nil {
			c.sendError(err.Error())
			return true
		}
		_ = c.send(TypeBye, summaryData(summary))
		if err := h.chatSvc.EndSession(ctx, c.sessionID); err != nil {
			c.log.Warn().Err(err).Msg("end session failed")
		}
		return true
	case command.Help:
		resp, err := h.chatSvc.Help(ctx, c.sessionID)
		if err != nil {
			c.sendError(err.Error())
			return false
		}
		_ = c.send(TypeHelp, resp)
	case command.Summary:
		summary, err := h.chatSvc.Summary(ctx, c.sessionID)
		if err != nil {
			c.sendError(err.Error())
			return false
		}
		_ = c.send(TypeSummary, summaryData(summary))
	default:
		resp, err := h.chatSvc.Send(ctx, c.sessionID, text)
		if err != nil {
			c.sendError(err.Error())
			return false
		}
		_ = c.send(TypeResponse, resp)
	}
	return false
}

func summaryData(s chat.Summary) SummaryData {
	return SummaryData{Empty: s.Empty(), Text: s.String(), Summary: s}
}

func pingLoop(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
