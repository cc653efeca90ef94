package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhouzirui/ward-bot/backend/internal/analysis/dialogue"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 18, 14, 7, 0, 0, time.UTC)
}

func TestConverse(t *testing.T) {
	engine := dialogue.New(content.NewMemoryStore(content.Seed()), dialogue.WithSeed(1), dialogue.WithClock(fixedClock))
	in := strings.NewReader("원무과 연락처\nsummary\nquit\n이건 처리되지 않음\n")
	var out bytes.Buffer

	if err := converse(engine, fixedClock, in, &out, false); err != nil {
		t.Fatalf("converse: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"🤖 챗봇: 📞 원무과: 내선 1100",
		"[카테고리: CONTACT | 시간: 14:07]",
		"총 메시지 수: 1",
		"[카테고리: SUMMARY | 시간: 14:07]",
		"수고하셨습니다",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "👤 당신:") {
		t.Error("prompt must not be printed for non-interactive input")
	}
	if engine.TurnCount() != 1 {
		t.Errorf("TurnCount = %d, want 1", engine.TurnCount())
	}
}

func TestConverseEndOfInput(t *testing.T) {
	engine := dialogue.New(content.NewMemoryStore(content.Seed()), dialogue.WithSeed(1), dialogue.WithClock(fixedClock))
	var out bytes.Buffer

	if err := converse(engine, fixedClock, strings.NewReader("도움말"), &out, true); err != nil {
		t.Fatalf("converse: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "[카테고리: HELP") {
		t.Errorf("expected help reply:\n%s", got)
	}
	if !strings.Contains(got, "👤 당신: ") {
		t.Error("expected prompt in interactive mode")
	}
}

func TestRootCmdWithContentFile(t *testing.T) {
	data, err := content.Marshal(content.Seed())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader("화재\nexit\n"))
	cmd.SetArgs([]string{"--content", path, "--seed", "3", "--timezone", "UTC"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "[카테고리: EMERGENCY") {
		t.Errorf("expected emergency reply:\n%s", out.String())
	}
}

func TestRootCmdRejectsBadContent(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--content", filepath.Join(t.TempDir(), "missing.yaml")})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing content file")
	}
}
