package language

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// Language is one of the languages accepted as translation source or target.
type Language int

const (
	English Language = iota
	Arabic
	Chinese
	French
	German
	Italian
	Portuguese
	Russian
	Spanish
)

// ErrUnknownLanguage is returned when a code or name matches no Language.
var ErrUnknownLanguage = errors.New("unknown language")

type entry struct {
	code string
	name string
}

// NOTE: Russian uses "rs" and "Russain" as in the upstream table. The code is
// what goes on the wire, so it is kept even though the ISO code is "ru".
var table = [...]entry{
	English:    {"en", "English"},
	Arabic:     {"ar", "Arabic"},
	Chinese:    {"zh", "Chinese"},
	French:     {"fr", "French"},
	German:     {"de", "German"},
	Italian:    {"it", "Italian"},
	Portuguese: {"pt", "Portuguese"},
	Russian:    {"rs", "Russain"},
	Spanish:    {"es", "Spanish"},
}

var aliases = map[string]Language{
	"ru":      Russian,
	"russian": Russian,
}

// All returns every Language in declaration order.
func All() []Language {
	out := make([]Language, len(table))
	for i := range table {
		out[i] = Language(i)
	}
	return out
}

// Valid reports whether l is one of the declared languages.
func (l Language) Valid() bool {
	return l >= 0 && int(l) < len(table)
}

// Code returns the two-letter code sent on the wire (ex. "ar", "de").
func (l Language) Code() string {
	if !l.Valid() {
		return ""
	}
	return table[l].code
}

// Name returns the full English name (ex. "Arabic", "German").
func (l Language) Name() string {
	if !l.Valid() {
		return ""
	}
	return table[l].name
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return table[l].code
}

// Parse resolves a code or display name, ignoring case.
func Parse(s string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, e := range table {
		if key == e.code || key == strings.ToLower(e.name) {
			return Language(i), nil
		}
	}
	if l, ok := aliases[key]; ok {
		return l, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, int(l))
	}
	return []byte(l.Code()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Value stores the language as its code.
func (l Language) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, int(l))
	}
	return l.Code(), nil
}

func (l *Language) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return l.UnmarshalText([]byte(v))
	case []byte:
		return l.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Language", src)
	}
}
