package content

import (
	"math/rand/v2"
	"strings"
)

// Entry is one keyword→text row of an ordered table.
type Entry struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Text    string `yaml:"text" json:"text"`
}

// Department pairs a department name with its contact string.
type Department struct {
	Name    string `yaml:"name" json:"name"`
	Contact string `yaml:"contact" json:"contact"`
}

// Category groups trigger keywords with the responses returned on a hit.
type Category struct {
	Name      string   `yaml:"name" json:"name"`
	Keywords  []string `yaml:"keywords" json:"keywords"`
	Responses []string `yaml:"responses" json:"responses"`
}

// TimeOfDay holds one greeting template per hour bucket.
type TimeOfDay struct {
	Morning   string `yaml:"morning" json:"morning"`
	Afternoon string `yaml:"afternoon" json:"afternoon"`
	Evening   string `yaml:"evening" json:"evening"`
	Night     string `yaml:"night" json:"night"`
}

// Greetings configures greeting detection and the reply building blocks.
type Greetings struct {
	Triggers  []string  `yaml:"triggers" json:"triggers"`
	Variants  []string  `yaml:"variants" json:"variants"`
	TimeOfDay TimeOfDay `yaml:"time_of_day" json:"timeOfDay"`
}

// ForHour returns the template for the hour using [6,12) morning,
// [12,18) afternoon, [18,22) evening and night otherwise.
func (t TimeOfDay) ForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return t.Morning
	case hour >= 12 && hour < 18:
		return t.Afternoon
	case hour >= 18 && hour < 22:
		return t.Evening
	default:
		return t.Night
	}
}

// ContactRules lists the words that open the contact lookup and the words
// that ask for the whole directory.
type ContactRules struct {
	Triggers []string `yaml:"triggers" json:"triggers"`
	ListAll  []string `yaml:"list_all" json:"listAll"`
}

// NamePattern is one name-registration pattern: the markers that enable it
// and the particles stripped from a candidate token.
type NamePattern struct {
	Markers  []string `yaml:"markers" json:"markers"`
	Suffixes []string `yaml:"suffixes" json:"suffixes"`
}

// NameRules drives name registration.
type NameRules struct {
	Trigger     string      `yaml:"trigger" json:"trigger"`
	Declarative NamePattern `yaml:"declarative" json:"declarative"`
	Imperative  NamePattern `yaml:"imperative" json:"imperative"`
	Excluded    []string    `yaml:"excluded" json:"excluded"`
	MaxLength   int         `yaml:"max_length" json:"maxLength"`
}

// Tables is the full set of content. Slice order is match precedence.
type Tables struct {
	Emergency   []Entry      `yaml:"emergency" json:"emergency"`
	Greetings   Greetings    `yaml:"greetings" json:"greetings"`
	FAQ         []Entry      `yaml:"faq" json:"faq"`
	Contacts    ContactRules `yaml:"contacts" json:"contacts"`
	Departments []Department `yaml:"departments" json:"departments"`
	Categories  []Category   `yaml:"categories" json:"categories"`
	Defaults    []string     `yaml:"defaults" json:"defaults"`
	Names       NameRules    `yaml:"names" json:"names"`
}

// Store exposes read-only lookups over the content tables.
type Store interface {
	MatchEmergency(text string) (Entry, bool)
	Emergency() []Entry
	Greetings() Greetings
	MatchFAQ(text string) (Entry, bool)
	FAQ() []Entry
	ContactRules() ContactRules
	MatchDepartment(text string) (Department, bool)
	Contact(department string) (string, bool)
	Departments() []Department
	MatchCategory(text string) (Category, bool)
	Categories() []Category
	Defaults() []string
	NameRules() NameRules
}

// Random is the subset of *rand.Rand used for variant selection.
type Random interface {
	IntN(n int) int
}

// Pick returns a uniformly chosen element of variants, or "" when empty.
func Pick(rng Random, variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	if rng == nil {
		return variants[rand.IntN(len(variants))]
	}
	return variants[rng.IntN(len(variants))]
}

// ContainsAny reports whether any non-empty word occurs in text.
func ContainsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}
