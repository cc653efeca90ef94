package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/ward-bot/backend/internal/analysis/dialogue"
	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

var ErrSessionNotFound = errors.New("session not found")

// Config tunes the engines the service creates.
type Config struct {
	// HistoryLimit bounds retained turns per session; zero keeps all.
	HistoryLimit int
	// RandomSeed makes every session's replies reproducible when non-zero.
	RandomSeed uint64
	// Now is the wall clock; defaults to time.Now.
	Now func() time.Time
	// IdleTTL is how long a session may stay untouched before Sweep drops it.
	IdleTTL time.Duration
}

// Service hosts one dialogue engine per session. Engines are not safe for
// concurrent use, so each session serializes its own calls.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*session

	source content.Source
	cfg    Config
	log    zerolog.Logger
}

type session struct {
	mu     sync.Mutex
	info   chat.Session
	engine *dialogue.Engine
}

// NewService bootstraps the in-memory chat service.
func NewService(source content.Source, cfg Config, log zerolog.Logger) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		sessions: make(map[string]*session),
		source:   source,
		cfg:      cfg,
		log:      log.With().Str("component", "chat_service").Logger(),
	}
}

// CreateSession provisions an anonymous session bound to the current
// content snapshot. Later content reloads do not affect it.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	now := s.cfg.Now()
	info := chat.Session{
		ID:         uuid.NewString(),
		CreatedAt:  now.UTC(),
		LastActive: now.UTC(),
	}

	opts := []dialogue.Option{
		dialogue.WithClock(s.cfg.Now),
		dialogue.WithMaxTurns(s.cfg.HistoryLimit),
	}
	if s.cfg.RandomSeed != 0 {
		opts = append(opts, dialogue.WithSeed(s.cfg.RandomSeed))
	}

	sess := &session{
		info:   info,
		engine: dialogue.New(s.source.Current(), opts...),
	}

	s.mu.Lock()
	s.sessions[info.ID] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	sessionsActive.Set(float64(active))
	s.log.Info().Str("session_id", info.ID).Msg("session created")
	return info, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Session{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.info, nil
}

// Send runs one utterance through the session's engine.
func (s *Service) Send(_ context.Context, sessionID, text string) (chat.Response, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Response{}, err
	}

	sess.mu.Lock()
	resp := sess.engine.Process(text)
	sess.info.LastActive = s.cfg.Now().UTC()
	sess.mu.Unlock()

	responsesTotal.WithLabelValues(string(resp.Category), string(resp.Priority)).Inc()

	event := s.log.Debug()
	if resp.Priority == chat.PriorityHigh {
		event = s.log.Warn()
	}
	event.
		Str("session_id", sessionID).
		Str("category", string(resp.Category)).
		Int("turn_count", resp.TurnCount).
		Msg("message processed")
	return resp, nil
}

// Help returns the usage guide for the session.
func (s *Service) Help(_ context.Context, sessionID string) (chat.Response, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Response{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Help(), nil
}

// Summary describes the session's history so far.
func (s *Service) Summary(_ context.Context, sessionID string) (chat.Summary, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return chat.Summary{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Summarize(), nil
}

// LoadTranscript returns the retained turns for the session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Turn, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.History(), nil
}

// EndSession discards the session and its state.
func (s *Service) EndSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	active := len(s.sessions)
	s.mu.Unlock()

	sessionsActive.Set(float64(active))
	s.log.Info().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// Sweep drops sessions idle for longer than the configured TTL and returns
// how many were removed. A zero TTL disables eviction.
func (s *Service) Sweep(now time.Time) int {
	if s.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.UTC().Add(-s.cfg.IdleTTL)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.info.LastActive.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	active := len(s.sessions)
	s.mu.Unlock()

	sessionsActive.Set(float64(active))
	if removed > 0 {
		s.log.Info().Int("removed", removed).Int("active", active).Msg("idle sessions evicted")
	}
	return removed
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.cfg.IdleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.cfg.Now())
		}
	}
}

func (s *Service) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
