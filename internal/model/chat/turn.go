package chat

// TimeLayout renders turn and response timestamps as hours:minutes.
const TimeLayout = "15:04"

// Turn is one user utterance as captured by the engine. Turns are never
// modified after they are appended to a history.
type Turn struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Timestamp  string `json:"timestamp"`
}
