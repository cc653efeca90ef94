package stream

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
	chatservice "github.com/zhouzirui/ward-bot/backend/internal/service/chat"
)

type sseEvent struct {
	name string
	data string
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	return events
}

func setup(t *testing.T) (http.Handler, *chatservice.Service) {
	t.Helper()
	source := content.Static(content.NewMemoryStore(content.Seed()))
	chatSvc := chatservice.NewService(source, chatservice.Config{RandomSeed: 3}, zerolog.Nop())
	r := chi.NewRouter()
	New(chatSvc, zerolog.Nop()).RegisterRoutes(r)
	return r, chatSvc
}

func TestStreamEmitsResponseThenDone(t *testing.T) {
	r, chatSvc := setup(t)
	session, err := chatSvc.CreateSession(t.Context())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/stream/"+session.ID+"?message="+url.QueryEscape("코드블루 발생"), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	events := parseEvents(t, rec.Body.String())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %q", len(events), rec.Body.String())
	}
	if events[0].name != "response" || events[1].name != "done" {
		t.Fatalf("unexpected event order: %+v", events)
	}

	var resp chat.Response
	if err := json.Unmarshal([]byte(events[0].data), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Category != chat.CategoryEmergency || resp.Priority != chat.PriorityHigh {
		t.Fatalf("expected emergency/high, got %s/%s", resp.Category, resp.Priority)
	}

	var done StreamResponse
	if err := json.Unmarshal([]byte(events[1].data), &done); err != nil {
		t.Fatalf("decode done: %v", err)
	}
	if !done.Finished || done.TurnCount != 1 || done.SessionID != session.ID {
		t.Fatalf("unexpected done payload %+v", done)
	}
}

func TestStreamUnknownSession(t *testing.T) {
	r, _ := setup(t)

	req := httptest.NewRequest(http.MethodGet, "/stream/missing?message=hi", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
