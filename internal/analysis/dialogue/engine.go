// Package dialogue classifies nurse utterances against the ward content
// tables and keeps the per-conversation state the classification needs.
//
// An Engine serves exactly one conversation and is not safe for concurrent
// use. Callers that host many conversations create one Engine per session.
package dialogue

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

// ErrEmptyInput reports an utterance that is empty or whitespace only.
var ErrEmptyInput = errors.New("dialogue: empty input")

const emptyInputMessage = "메시지를 입력해주세요."

// Engine runs the classification pipeline for one conversation.
type Engine struct {
	store    content.Store
	rng      content.Random
	now      func() time.Time
	maxTurns int

	history  []chat.Turn
	first    chat.Turn
	total    int
	userName string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRandom sets the source used for greeting, category and fallback picks.
func WithRandom(rng content.Random) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed makes random picks reproducible.
func WithSeed(seed uint64) Option {
	return WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithClock sets the wall clock used for timestamps and greeting buckets.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithMaxTurns bounds the retained history. Zero or less keeps every turn.
// Turn counts and summaries still cover the whole conversation.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

// New returns an engine with empty session state bound to store.
func New(store content.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process classifies raw and returns the response. It never fails: empty
// input yields an ERROR response and anything unmatched falls back to
// DEFAULT.
func (e *Engine) Process(raw string) chat.Response {
	if err := validate(raw); err != nil {
		return e.respond(emptyInputMessage, chat.CategoryError, chat.PriorityNormal)
	}

	in := e.capture(raw)
	for _, r := range pipeline {
		if resp, ok := r(e, in); ok {
			return resp
		}
	}
	return e.fallback()
}

// Help returns the static usage guide.
func (e *Engine) Help() chat.Response {
	return e.respond(HelpText, chat.CategoryHelp, chat.PriorityNormal)
}

// Summarize reports the size and time span of the conversation so far.
func (e *Engine) Summarize() chat.Summary {
	if e.total == 0 {
		return chat.Summary{}
	}
	name := e.userName
	if name == "" {
		name = chat.UnsetName
	}
	return chat.Summary{
		TotalTurns: e.total,
		FirstTurn:  e.first.Timestamp,
		LastTurn:   e.history[len(e.history)-1].Timestamp,
		UserName:   name,
	}
}

// History returns a copy of the retained turns, oldest first.
func (e *Engine) History() []chat.Turn {
	return append([]chat.Turn(nil), e.history...)
}

// UserName returns the registered name, if any.
func (e *Engine) UserName() (string, bool) {
	return e.userName, e.userName != ""
}

// TurnCount returns the number of non-empty utterances processed.
func (e *Engine) TurnCount() int {
	return e.total
}

func validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyInput
	}
	return nil
}

// capture appends a turn for raw and returns the matching view of it.
func (e *Engine) capture(raw string) input {
	in := newInput(raw)
	turn := chat.Turn{
		Raw:        raw,
		Normalized: in.text,
		Timestamp:  e.timestamp(),
	}

	if e.total == 0 {
		e.first = turn
	}
	e.total++
	e.history = append(e.history, turn)
	if e.maxTurns > 0 && len(e.history) > e.maxTurns {
		e.history = append([]chat.Turn(nil), e.history[len(e.history)-e.maxTurns:]...)
	}
	return in
}

func (e *Engine) timestamp() string {
	return e.now().Format(chat.TimeLayout)
}

func (e *Engine) respond(message string, category chat.Category, priority chat.Priority) chat.Response {
	return chat.Response{
		Message:   message,
		Category:  category,
		Timestamp: e.timestamp(),
		Priority:  priority,
		TurnCount: e.total,
	}
}
