package dialogue

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zhouzirui/ward-bot/backend/internal/model/chat"
	"github.com/zhouzirui/ward-bot/backend/internal/model/content"
)

const (
	emergencyMarker = "🚨"
	faqMarker       = "📋"
	contactMarker   = "📞"

	contactListHeader = "부서별 연락처:"
	fallbackMessage   = "죄송합니다. 이해하지 못했습니다."
)

// input is the matching view of one utterance.
type input struct {
	// text is the normalized utterance every substring test runs against.
	text string
	// display is the composed utterance with its original casing, used to
	// cut names out of the text.
	display string
}

func newInput(raw string) input {
	return input{
		text:    content.Normalize(raw),
		display: strings.TrimSpace(norm.NFC.String(raw)),
	}
}

// rule inspects an utterance and answers it when it applies.
type rule func(e *Engine, in input) (chat.Response, bool)

// pipeline lists the rules in precedence order. The first rule that applies
// answers the turn; fallback answers when none does.
var pipeline = []rule{
	(*Engine).matchEmergency,
	(*Engine).matchGreeting,
	(*Engine).matchName,
	(*Engine).matchFAQ,
	(*Engine).matchContact,
	(*Engine).matchCategory,
}

func (e *Engine) matchEmergency(in input) (chat.Response, bool) {
	entry, ok := e.store.MatchEmergency(in.text)
	if !ok {
		return chat.Response{}, false
	}
	return e.respond(emergencyMarker+" "+entry.Text, chat.CategoryEmergency, chat.PriorityHigh), true
}

func (e *Engine) matchGreeting(in input) (chat.Response, bool) {
	greetings := e.store.Greetings()
	if !content.ContainsAny(in.text, greetings.Triggers) {
		return chat.Response{}, false
	}

	timeGreeting := greetings.TimeOfDay.ForHour(e.now().Hour())
	base := content.Pick(e.rng, greetings.Variants)
	message := strings.TrimSpace(timeGreeting + " " + base)
	if e.userName != "" {
		message = fmt.Sprintf("%s님, %s", e.userName, message)
	}
	return e.respond(message, chat.CategoryGreeting, chat.PriorityNormal), true
}

func (e *Engine) matchName(in input) (chat.Response, bool) {
	match, ok := ExtractName(e.store.NameRules(), in.text, in.display)
	if !ok {
		return chat.Response{}, false
	}

	e.userName = match.Name
	var message string
	switch match.Pattern {
	case PatternImperative:
		message = fmt.Sprintf("알겠습니다, %s님! 앞으로 %s님이라고 부르겠습니다.", match.Name, match.Name)
	default:
		message = fmt.Sprintf("반갑습니다, %s님! 앞으로 %s님이라고 부르겠습니다.", match.Name, match.Name)
	}
	return e.respond(message, chat.CategoryNameSet, chat.PriorityNormal), true
}

func (e *Engine) matchFAQ(in input) (chat.Response, bool) {
	entry, ok := e.store.MatchFAQ(in.text)
	if !ok {
		return chat.Response{}, false
	}
	return e.respond(faqMarker+" "+entry.Text, chat.CategoryFAQ, chat.PriorityNormal), true
}

func (e *Engine) matchContact(in input) (chat.Response, bool) {
	rules := e.store.ContactRules()
	if !content.ContainsAny(in.text, rules.Triggers) {
		return chat.Response{}, false
	}

	if dept, ok := e.store.MatchDepartment(in.text); ok {
		message := fmt.Sprintf("%s %s: %s", contactMarker, dept.Name, dept.Contact)
		return e.respond(message, chat.CategoryContact, chat.PriorityNormal), true
	}

	if content.ContainsAny(in.text, rules.ListAll) {
		return e.respond(formatDirectory(e.store.Departments()), chat.CategoryContact, chat.PriorityNormal), true
	}
	return chat.Response{}, false
}

func formatDirectory(departments []content.Department) string {
	var b strings.Builder
	b.WriteString(contactMarker + " " + contactListHeader)
	for _, d := range departments {
		fmt.Fprintf(&b, "\n%s: %s", d.Name, d.Contact)
	}
	return b.String()
}

func (e *Engine) matchCategory(in input) (chat.Response, bool) {
	cat, ok := e.store.MatchCategory(in.text)
	if !ok {
		return chat.Response{}, false
	}
	message := content.Pick(e.rng, cat.Responses)
	return e.respond(message, chat.Category(cat.Name), chat.PriorityNormal), true
}

func (e *Engine) fallback() chat.Response {
	message := content.Pick(e.rng, e.store.Defaults())
	if message == "" {
		message = fallbackMessage
	}
	return e.respond(message, chat.CategoryDefault, chat.PriorityNormal)
}
