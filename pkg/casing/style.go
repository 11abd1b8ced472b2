// Package casing detects the naming convention of an identifier, splits it into
// words and reassembles those words in another convention.
//
// All functions are pure and safe for concurrent use.
package casing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/casefang/pkg/levenshtein"
)

// Style is a naming convention.
type Style int

// Recognized styles. Mixed is the residual classification for identifiers that
// match none of the strict styles and is never a valid composition target.
const (
	Mixed Style = iota
	Camel
	Pascal
	Snake
	ScreamingSnake
)

// ErrUnknownStyle is returned when a style name cannot be parsed.
var ErrUnknownStyle = errors.New("unknown case style")

var styleNames = [...]string{
	Mixed:          "mixedCase",
	Camel:          "camelCase",
	Pascal:         "PascalCase",
	Snake:          "snake_case",
	ScreamingSnake: "SCREAMING_SNAKE_CASE",
}

// styleAliases maps normalized spellings to styles. Keys are lowercased with
// separators removed, so "snake_case", "snakeCase" and "SNAKE-CASE" collapse.
var styleAliases = map[string]Style{
	"mixedcase":          Mixed,
	"mixed":              Mixed,
	"camelcase":          Camel,
	"camel":              Camel,
	"lowercamelcase":     Camel,
	"pascalcase":         Pascal,
	"pascal":             Pascal,
	"uppercamelcase":     Pascal,
	"snakecase":          Snake,
	"snake":              Snake,
	"screamingsnakecase": ScreamingSnake,
	"screamingsnake":     ScreamingSnake,
	"constantcase":       ScreamingSnake,
	"uppersnakecase":     ScreamingSnake,
}

// String returns the canonical name of the style, written in that style.
func (s Style) String() string {
	if s < Mixed || s > ScreamingSnake {
		return fmt.Sprintf("Style(%d)", int(s))
	}

	return styleNames[s]
}

// Strict reports whether s is one of the four styles words can be composed into.
func (s Style) Strict() bool {
	switch s {
	case Camel, Pascal, Snake, ScreamingSnake:
		return true
	case Mixed:
		return false
	default:
		return false
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s Style) MarshalText() ([]byte, error) {
	if s < Mixed || s > ScreamingSnake {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStyle, int(s))
	}

	return []byte(styleNames[s]), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// ParseStyle parses a style name. Canonical names ("camelCase", "PascalCase",
// "snake_case", "SCREAMING_SNAKE_CASE", "mixedCase") and configuration spellings
// ("pascalCase", "snakeCase", "screamingSnakeCase") are accepted in any letter case.
func ParseStyle(name string) (Style, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		default:
			return r
		}
	}, strings.ToLower(strings.TrimSpace(name)))

	style, ok := styleAliases[key]
	if !ok {
		return Mixed, fmt.Errorf("%w: %q%s", ErrUnknownStyle, name, levenshtein.Hint(name, styleNames[:]))
	}

	return style, nil
}

// Styles returns the strict styles in declaration order.
func Styles() []Style {
	return []Style{Camel, Pascal, Snake, ScreamingSnake}
}
