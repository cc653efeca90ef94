package chat

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

func TestSendCountsResponsesByCategory(t *testing.T) {
	svc := NewService(content.Static(content.NewMemoryStore(content.Seed())), Config{}, zerolog.Nop())
	ctx := context.Background()
	session, _ := svc.CreateSession(ctx)

	emergency := responsesTotal.WithLabelValues("EMERGENCY", "HIGH")
	before := testutil.ToFloat64(emergency)

	if _, err := svc.Send(ctx, session.ID, "코드블루!"); err != nil {
		t.Fatalf("Send err: %v", err)
	}

	if got := testutil.ToFloat64(emergency) - before; got != 1 {
		t.Fatalf("expected emergency counter +1, got %v", got)
	}
	if active := testutil.ToFloat64(sessionsActive); active < 1 {
		t.Fatalf("expected at least one active session, got %v", active)
	}
}
