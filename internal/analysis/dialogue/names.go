package dialogue

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

// NamePattern identifies which registration form produced a name.
type NamePattern int

const (
	// PatternDeclarative is "제 이름은 X입니다".
	PatternDeclarative NamePattern = iota + 1
	// PatternImperative is "X라고 불러주세요".
	PatternImperative
)

// NameMatch is a successfully extracted name.
type NameMatch struct {
	Name    string
	Pattern NamePattern
}

// ExtractName applies the registration rules to an utterance. text is the
// normalized utterance and display the same utterance in its original
// casing; names are cut from display so they keep their capitalization.
//
// The declarative form takes the single token after a marker token, so a
// name containing spaces is truncated to its first word. The imperative form
// is only tried when no declarative marker is present.
func ExtractName(rules content.NameRules, text, display string) (NameMatch, bool) {
	if rules.Trigger == "" || !strings.Contains(text, rules.Trigger) {
		return NameMatch{}, false
	}

	tokens := strings.Fields(text)
	cased := strings.Fields(display)
	if len(cased) != len(tokens) {
		cased = tokens
	}

	if content.ContainsAny(text, rules.Declarative.Markers) {
		for i, tok := range tokens {
			if !content.ContainsAny(tok, rules.Declarative.Markers) || i+1 >= len(cased) {
				continue
			}
			name := stripParticles(cased[i+1], rules.Declarative.Suffixes)
			if validName(name, rules) {
				return NameMatch{Name: name, Pattern: PatternDeclarative}, true
			}
		}
		return NameMatch{}, false
	}

	if content.ContainsAny(text, rules.Imperative.Markers) {
		for _, tok := range cased {
			name := stripParticles(tok, rules.Imperative.Suffixes)
			if validName(name, rules) && !slices.Contains(rules.Excluded, content.Normalize(name)) {
				return NameMatch{Name: name, Pattern: PatternImperative}, true
			}
		}
	}
	return NameMatch{}, false
}

// stripParticles removes every occurrence of each suffix from token,
// ignoring case, while keeping the casing of what remains.
func stripParticles(token string, suffixes []string) string {
	for _, s := range suffixes {
		if s != "" {
			token = removeFold(token, s)
		}
	}
	return token
}

// removeFold deletes non-overlapping, left-to-right matches of sub in s,
// comparing rune by rune in lower case.
func removeFold(s, sub string) string {
	runes := []rune(s)
	pattern := []rune(sub)

	var b strings.Builder
	for i := 0; i < len(runes); {
		if i+len(pattern) <= len(runes) && equalFold(runes[i:i+len(pattern)], pattern) {
			i += len(pattern)
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func equalFold(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func validName(name string, rules content.NameRules) bool {
	limit := rules.MaxLength
	if limit <= 0 {
		limit = content.DefaultMaxNameLength
	}
	return name != "" && utf8.RuneCountInString(name) <= limit
}
