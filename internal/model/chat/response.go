package chat

import "fmt"

// Category tags the pipeline stage that produced a response. Keyword
// categories use the content category name verbatim.
type Category string

const (
	CategoryError     Category = "ERROR"
	CategoryEmergency Category = "EMERGENCY"
	CategoryGreeting  Category = "GREETING"
	CategoryNameSet   Category = "NAME_SET"
	CategoryFAQ       Category = "FAQ"
	CategoryContact   Category = "CONTACT"
	CategoryDefault   Category = "DEFAULT"
	CategoryHelp      Category = "HELP"
	CategorySummary   Category = "SUMMARY"
)

// Priority marks how urgently a front-end should surface a response.
type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

// Response is the engine output for one turn.
type Response struct {
	Message   string   `json:"message"`
	Category  Category `json:"category"`
	Timestamp string   `json:"timestamp"`
	Priority  Priority `json:"priority"`
	TurnCount int      `json:"turnCount"`
}

// UnsetName is reported by a summary when no name was registered.
const UnsetName = "미설정"

// NoHistory is the summary text for a session without turns.
const NoHistory = "아직 대화 기록이 없습니다."

// Summary describes a session's history. The zero value means no turns yet.
type Summary struct {
	TotalTurns int    `json:"totalTurns"`
	FirstTurn  string `json:"firstTurn,omitempty"`
	LastTurn   string `json:"lastTurn,omitempty"`
	UserName   string `json:"userName,omitempty"`
}

// Empty reports whether the session has no turns.
func (s Summary) Empty() bool {
	return s.TotalTurns == 0
}

func (s Summary) String() string {
	if s.Empty() {
		return NoHistory
	}
	return fmt.Sprintf("총 메시지 수: %d\n첫 메시지 시간: %s\n마지막 메시지 시간: %s\n사용자 이름: %s",
		s.TotalTurns, s.FirstTurn, s.LastTurn, s.UserName)
}
