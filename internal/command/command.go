// Package command recognizes the session-control words front-ends handle
// themselves before handing text to the dialogue engine.
package command

import "strings"

// Kind is a recognized control command.
type Kind int

const (
	// None means the text is an utterance for the engine.
	None Kind = iota
	Quit
	Help
	Summary
)

func (k Kind) String() string {
	switch k {
	case Quit:
		return "quit"
	case Help:
		return "help"
	case Summary:
		return "summary"
	default:
		return "none"
	}
}

var words = map[string]Kind{
	"quit":    Quit,
	"exit":    Quit,
	"종료":      Quit,
	"나가기":     Quit,
	"help":    Help,
	"도움말":     Help,
	"summary": Summary,
	"요약":      Summary,
}

// Parse matches the whole trimmed, lowercased text against the control
// words. Anything else, including text that merely contains one, is None.
func Parse(text string) Kind {
	return words[strings.ToLower(strings.TrimSpace(text))]
}
