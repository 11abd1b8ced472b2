package casing

import (
	"regexp"
	"strings"
)

// Classification shapes, checked in priority order by Detect.
var (
	screamingSnakeShape = regexp.MustCompile(`^[A-Z][A-Z0-9_]+$`)
	snakeShape          = regexp.MustCompile(`^[a-z][a-z0-9_]+$`)
	pascalShape         = regexp.MustCompile(`^(?:[A-Z][a-z0-9]*[A-Z]*){2,}$`)
	camelShape          = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z]+[a-z0-9]*)+$`)
	acronymShape        = regexp.MustCompile(`^[A-Z]+$`)
)

// Detect classifies ident. Underscore styles are checked first, then PascalCase,
// then camelCase. Anything else, including single words and acronym-only
// identifiers, is Mixed.
func Detect(ident string) Style {
	if strings.Contains(ident, "_") {
		if screamingSnakeShape.MatchString(ident) {
			return ScreamingSnake
		}

		if snakeShape.MatchString(ident) {
			return Snake
		}
	}

	if pascalShape.MatchString(ident) && !acronymShape.MatchString(ident) {
		return Pascal
	}

	if camelShape.MatchString(ident) {
		return Camel
	}

	return Mixed
}
