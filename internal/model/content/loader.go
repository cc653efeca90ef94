package content

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxNameLength caps registered names, counted in characters.
const DefaultMaxNameLength = 10

// reservedCategories are response tags owned by the fixed pipeline stages;
// a keyword category may not reuse one.
var reservedCategories = []string{
	"ERROR", "EMERGENCY", "GREETING", "NAME_SET", "FAQ", "CONTACT", "DEFAULT", "HELP", "SUMMARY",
}

// Load reads a YAML content file from path and returns validated tables.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into validated tables.
func Parse(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("content: parse: %w", err)
	}
	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// Marshal renders tables as YAML, in the layout Parse accepts.
func Marshal(t Tables) ([]byte, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("content: marshal: %w", err)
	}
	return data, nil
}

func (t *Tables) applyDefaults() {
	defaults := DefaultNameRules()
	if t.Names.Trigger == "" {
		t.Names.Trigger = defaults.Trigger
	}
	if len(t.Names.Declarative.Markers) == 0 {
		t.Names.Declarative = defaults.Declarative
	}
	if len(t.Names.Imperative.Markers) == 0 {
		t.Names.Imperative = defaults.Imperative
	}
	if t.Names.Excluded == nil {
		t.Names.Excluded = defaults.Excluded
	}
	if t.Names.MaxLength <= 0 {
		t.Names.MaxLength = DefaultMaxNameLength
	}
}

// Validate checks key uniqueness and that every list a rule picks from is
// non-empty.
func (t Tables) Validate() error {
	var errs []string

	errs = append(errs, uniqueKeys("emergency", entryKeys(t.Emergency))...)
	errs = append(errs, uniqueKeys("faq", entryKeys(t.FAQ))...)

	deptNames := make([]string, 0, len(t.Departments))
	for i, d := range t.Departments {
		if strings.TrimSpace(d.Contact) == "" {
			errs = append(errs, fmt.Sprintf("departments[%d].contact is required", i))
		}
		deptNames = append(deptNames, d.Name)
	}
	errs = append(errs, uniqueKeys("departments", deptNames)...)

	catNames := make([]string, 0, len(t.Categories))
	for i, c := range t.Categories {
		if len(c.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("categories[%d].keywords must not be empty", i))
		}
		if len(c.Responses) == 0 {
			errs = append(errs, fmt.Sprintf("categories[%d].responses must not be empty", i))
		}
		for _, r := range reservedCategories {
			if strings.EqualFold(strings.TrimSpace(c.Name), r) {
				errs = append(errs, fmt.Sprintf("categories[%d].name %q is reserved", i, c.Name))
			}
		}
		catNames = append(catNames, c.Name)
	}
	errs = append(errs, uniqueKeys("categories", catNames)...)

	if len(t.Greetings.Variants) == 0 {
		errs = append(errs, "greetings.variants must not be empty")
	}
	if len(t.Defaults) == 0 {
		errs = append(errs, "defaults must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("content: validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func entryKeys(entries []Entry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Keyword)
	}
	return keys
}

func uniqueKeys(table string, keys []string) []string {
	var errs []string
	seen := make(map[string]int, len(keys))
	for i, k := range keys {
		norm := Normalize(k)
		if norm == "" {
			errs = append(errs, fmt.Sprintf("%s[%d] has an empty key", table, i))
			continue
		}
		if prev, ok := seen[norm]; ok {
			errs = append(errs, fmt.Sprintf("%s[%d] duplicates key %q from %s[%d]", table, i, k, table, prev))
			continue
		}
		seen[norm] = i
	}
	return errs
}
