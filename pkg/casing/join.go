package casing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedStyle is returned when words are composed into a style that has
// no canonical form, such as Mixed.
var ErrUnsupportedStyle = errors.New("unsupported target case style")

// Join composes words into style.
func Join(words []string, style Style) (string, error) {
	switch style {
	case Camel:
		return joinCamel(words), nil
	case Pascal:
		return joinPascal(words), nil
	case Snake:
		return joinSnake(words), nil
	case ScreamingSnake:
		return joinScreamingSnake(words), nil
	case Mixed:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedStyle, style)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedStyle, style)
	}
}

func joinCamel(words []string) string {
	var buf strings.Builder

	for i, word := range words {
		if i == 0 {
			buf.WriteString(strings.ToLower(word))

			continue
		}

		writeCapitalized(&buf, word)
	}

	return buf.String()
}

func joinPascal(words []string) string {
	var buf strings.Builder

	for _, word := range words {
		writeCapitalized(&buf, word)
	}

	return buf.String()
}

func joinSnake(words []string) string {
	lowered := make([]string, len(words))
	for i, word := range words {
		lowered[i] = strings.ToLower(word)
	}

	return strings.Join(lowered, "_")
}

func joinScreamingSnake(words []string) string {
	raised := make([]string, len(words))
	for i, word := range words {
		raised[i] = strings.ToUpper(word)
	}

	return strings.Join(raised, "_")
}

// writeCapitalized writes word with its first byte uppercased and the rest lowercased.
func writeCapitalized(buf *strings.Builder, word string) {
	if word == "" {
		return
	}

	buf.WriteString(strings.ToUpper(word[:1]))
	buf.WriteString(strings.ToLower(word[1:]))
}
