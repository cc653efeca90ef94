package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	chatService "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
)

func newTestRouter() http.Handler {
	source := content.Static(content.NewMemoryStore(content.Seed()))
	svc := chatService.NewService(source, chatService.Config{RandomSeed: 5}, zerolog.Nop())
	return NewRouter(source, svc, zerolog.Nop())
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestConversationThroughRouter(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS header")
	}
	var session chat.Session
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"sessionId": session.ID, "text": "중환자실 내선 번호"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewReader(body)))
	var resp chat.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "📞 중환자실: 내선 5500" {
		t.Fatalf("unexpected reply %q", resp.Message)
	}
}

func TestMetricsExposed(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "wardbot_sessions_active") {
		t.Fatal("expected session gauge in metrics output")
	}
}
