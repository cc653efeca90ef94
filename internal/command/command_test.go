package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"quit", Quit},
		{"  EXIT ", Quit},
		{"종료", Quit},
		{"나가기", Quit},
		{"help", Help},
		{"도움말", Help},
		{"Summary", Summary},
		{"요약", Summary},
		{"", None},
		{"help me", None},
		{"요약해줘", None},
	}
	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
