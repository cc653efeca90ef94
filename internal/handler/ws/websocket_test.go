package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	chatservice "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
)

type received struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
}

func dial(t *testing.T) (*websocket.Conn, *chatservice.Service, string) {
	t.Helper()
	source := content.Static(content.NewMemoryStore(content.Seed()))
	chatSvc := chatservice.NewService(source, chatservice.Config{RandomSeed: 11}, zerolog.Nop())

	r := chi.NewRouter()
	New(chatSvc, zerolog.Nop()).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	session, err := chatSvc.CreateSession(t.Context())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + session.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if msg := read(t, conn); msg.Type != TypeConnected {
		t.Fatalf("expected connected, got %s", msg.Type)
	}
	return conn, chatSvc, session.ID
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg received
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func sendText(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	err := conn.WriteJSON(map[string]any{"type": "text", "data": map[string]string{"text": text}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestTextGetsEngineResponse(t *testing.T) {
	conn, _, sessionID := dial(t)

	sendText(t, conn, "약제부 연락처")
	msg := read(t, conn)
	if msg.Type != TypeResponse || msg.SessionID != sessionID {
		t.Fatalf("unexpected message %+v", msg)
	}
	var resp chat.Response
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "📞 약제부: 내선 2200" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestControlWords(t *testing.T) {
	conn, chatSvc, sessionID := dial(t)

	sendText(t, conn, "도움말")
	if msg := read(t, conn); msg.Type != TypeHelp {
		t.Fatalf("expected help, got %s", msg.Type)
	}

	sendText(t, conn, "안녕")
	read(t, conn)

	sendText(t, conn, " Summary ")
	msg := read(t, conn)
	if msg.Type != TypeSummary {
		t.Fatalf("expected summary, got %s", msg.Type)
	}
	var summary SummaryData
	if err := json.Unmarshal(msg.Data, &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Summary.TotalTurns != 1 {
		t.Fatalf("control words must not count as turns, got %d", summary.Summary.TotalTurns)
	}

	sendText(t, conn, "종료")
	if msg := read(t, conn); msg.Type != TypeBye {
		t.Fatalf("expected bye, got %s", msg.Type)
	}
	if _, err := chatSvc.GetSession(t.Context(), sessionID); err == nil {
		t.Fatal("expected session to be ended")
	}
}

func TestUnsupportedType(t *testing.T) {
	conn, _, _ := dial(t)

	if err := conn.WriteJSON(map[string]string{"type": "audio"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if msg := read(t, conn); msg.Type != TypeError {
		t.Fatalf("expected error, got %s", msg.Type)
	}
}

func TestUnknownSessionRejected(t *testing.T) {
	source := content.Static(content.NewMemoryStore(content.Seed()))
	chatSvc := chatservice.NewService(source, chatservice.Config{}, zerolog.Nop())
	r := chi.NewRouter()
	New(chatSvc, zerolog.Nop()).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/ws/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
