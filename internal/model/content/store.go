package content

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes text to NFC, lowercases it and trims surrounding
// whitespace. Keywords and user input go through the same function so
// substring tests compare like with like.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

type indexedEntry struct {
	key   string
	entry Entry
}

type indexedDepartment struct {
	key  string
	dept Department
}

type indexedCategory struct {
	keys     []string
	category Category
}

// MemoryStore implements Store over an immutable copy of Tables.
type MemoryStore struct {
	tables      Tables
	emergency   []indexedEntry
	faq         []indexedEntry
	departments []indexedDepartment
	categories  []indexedCategory
}

// NewMemoryStore indexes the supplied tables. The tables are copied, so later
// changes by the caller are not observed.
func NewMemoryStore(t Tables) *MemoryStore {
	s := &MemoryStore{tables: cloneTables(t)}

	s.emergency = indexEntries(s.tables.Emergency)
	s.faq = indexEntries(s.tables.FAQ)

	for _, d := range s.tables.Departments {
		s.departments = append(s.departments, indexedDepartment{key: Normalize(d.Name), dept: d})
	}
	for _, c := range s.tables.Categories {
		keys := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			keys = append(keys, Normalize(kw))
		}
		s.categories = append(s.categories, indexedCategory{keys: keys, category: c})
	}

	s.tables.Greetings.Triggers = normalizeAll(s.tables.Greetings.Triggers)
	s.tables.Contacts.Triggers = normalizeAll(s.tables.Contacts.Triggers)
	s.tables.Contacts.ListAll = normalizeAll(s.tables.Contacts.ListAll)

	names := &s.tables.Names
	names.Trigger = Normalize(names.Trigger)
	names.Declarative.Markers = normalizeAll(names.Declarative.Markers)
	names.Imperative.Markers = normalizeAll(names.Imperative.Markers)
	names.Excluded = normalizeAll(names.Excluded)
	return s
}

func indexEntries(entries []Entry) []indexedEntry {
	out := make([]indexedEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, indexedEntry{key: Normalize(e.Keyword), entry: e})
	}
	return out
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func firstEntry(entries []indexedEntry, text string) (Entry, bool) {
	for _, e := range entries {
		if e.key != "" && strings.Contains(text, e.key) {
			return e.entry, true
		}
	}
	return Entry{}, false
}

// MatchEmergency returns the first emergency row whose keyword occurs in text.
func (s *MemoryStore) MatchEmergency(text string) (Entry, bool) {
	return firstEntry(s.emergency, text)
}

// Emergency returns the emergency table in declaration order.
func (s *MemoryStore) Emergency() []Entry {
	return append([]Entry(nil), s.tables.Emergency...)
}

// Greetings returns the greeting configuration with normalized triggers.
func (s *MemoryStore) Greetings() Greetings {
	g := s.tables.Greetings
	g.Triggers = append([]string(nil), g.Triggers...)
	g.Variants = append([]string(nil), g.Variants...)
	return g
}

// MatchFAQ returns the first FAQ row whose keyword occurs in text.
func (s *MemoryStore) MatchFAQ(text string) (Entry, bool) {
	return firstEntry(s.faq, text)
}

// FAQ returns the FAQ table in declaration order.
func (s *MemoryStore) FAQ() []Entry {
	return append([]Entry(nil), s.tables.FAQ...)
}

// ContactRules returns the contact trigger words.
func (s *MemoryStore) ContactRules() ContactRules {
	return ContactRules{
		Triggers: append([]string(nil), s.tables.Contacts.Triggers...),
		ListAll:  append([]string(nil), s.tables.Contacts.ListAll...),
	}
}

// MatchDepartment returns the first department whose name occurs in text.
func (s *MemoryStore) MatchDepartment(text string) (Department, bool) {
	for _, d := range s.departments {
		if d.key != "" && strings.Contains(text, d.key) {
			return d.dept, true
		}
	}
	return Department{}, false
}

// Contact looks a department up by exact name, ignoring case.
func (s *MemoryStore) Contact(department string) (string, bool) {
	key := Normalize(department)
	for _, d := range s.departments {
		if d.key == key {
			return d.dept.Contact, true
		}
	}
	return "", false
}

// Departments returns the directory in declaration order.
func (s *MemoryStore) Departments() []Department {
	return append([]Department(nil), s.tables.Departments...)
}

// MatchCategory walks categories in order and their keywords in order and
// returns the first category with a keyword in text.
func (s *MemoryStore) MatchCategory(text string) (Category, bool) {
	for _, c := range s.categories {
		for _, key := range c.keys {
			if key != "" && strings.Contains(text, key) {
				return c.category, true
			}
		}
	}
	return Category{}, false
}

// Categories returns the category table in declaration order.
func (s *MemoryStore) Categories() []Category {
	out := make([]Category, 0, len(s.tables.Categories))
	for _, c := range s.tables.Categories {
		out = append(out, cloneCategory(c))
	}
	return out
}

// Defaults returns the fallback responses.
func (s *MemoryStore) Defaults() []string {
	return append([]string(nil), s.tables.Defaults...)
}

// NameRules returns the name-registration rules with normalized markers.
func (s *MemoryStore) NameRules() NameRules {
	n := s.tables.Names
	n.Declarative = NamePattern{
		Markers:  append([]string(nil), n.Declarative.Markers...),
		Suffixes: append([]string(nil), n.Declarative.Suffixes...),
	}
	n.Imperative = NamePattern{
		Markers:  append([]string(nil), n.Imperative.Markers...),
		Suffixes: append([]string(nil), n.Imperative.Suffixes...),
	}
	n.Excluded = append([]string(nil), n.Excluded...)
	return n
}

func cloneCategory(c Category) Category {
	return Category{
		Name:      c.Name,
		Keywords:  append([]string(nil), c.Keywords...),
		Responses: append([]string(nil), c.Responses...),
	}
}

func cloneTables(t Tables) Tables {
	out := t
	out.Emergency = append([]Entry(nil), t.Emergency...)
	out.FAQ = append([]Entry(nil), t.FAQ...)
	out.Departments = append([]Department(nil), t.Departments...)
	out.Defaults = append([]string(nil), t.Defaults...)
	out.Greetings.Triggers = append([]string(nil), t.Greetings.Triggers...)
	out.Greetings.Variants = append([]string(nil), t.Greetings.Variants...)
	out.Contacts.Triggers = append([]string(nil), t.Contacts.Triggers...)
	out.Contacts.ListAll = append([]string(nil), t.Contacts.ListAll...)
	out.Categories = make([]Category, 0, len(t.Categories))
	for _, c := range t.Categories {
		out.Categories = append(out.Categories, cloneCategory(c))
	}
	out.Names.Declarative.Markers = append([]string(nil), t.Names.Declarative.Markers...)
	out.Names.Declarative.Suffixes = append([]string(nil), t.Names.Declarative.Suffixes...)
	out.Names.Imperative.Markers = append([]string(nil), t.Names.Imperative.Markers...)
	out.Names.Imperative.Suffixes = append([]string(nil), t.Names.Imperative.Suffixes...)
	out.Names.Excluded = append([]string(nil), t.Names.Excluded...)
	return out
}
