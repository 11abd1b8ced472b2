package casing

import "strings"

// Segment splits ident into lowercase words using the strategy for style.
//
// Camel and Pascal identifiers split on case transitions and letter/digit
// boundaries. Snake and screaming snake identifiers split on underscores.
// Mixed identifiers are first cut at every character that is not an ASCII
// letter or digit and each piece is then split like a camel identifier.
// Empty words are never returned.
func Segment(ident string, style Style) []string {
	var words []string

	switch style {
	case Camel, Pascal:
		words = splitTransitions(ident, nil)
	case Snake, ScreamingSnake:
		words = splitUnderscores(ident)
	case Mixed:
		words = splitMixed(ident)
	default:
		words = splitMixed(ident)
	}

	for i, word := range words {
		words[i] = strings.ToLower(word)
	}

	return words
}

// Split detects the style of ident and segments it accordingly.
func Split(ident string) []string {
	return Segment(ident, Detect(ident))
}

func splitUnderscores(ident string) []string {
	parts := strings.Split(ident, "_")
	words := parts[:0]

	for _, part := range parts {
		if part != "" {
			words = append(words, part)
		}
	}

	return words
}

func splitMixed(ident string) []string {
	var words []string

	start := -1

	for i := range len(ident) {
		if isAlnum(ident[i]) {
			if start < 0 {
				start = i
			}

			continue
		}

		if start >= 0 {
			words = splitTransitions(ident[start:i], words)
			start = -1
		}
	}

	if start >= 0 {
		words = splitTransitions(ident[start:], words)
	}

	return words
}

// splitTransitions appends the words of s to dst. A boundary sits before
// position i when
//
//	a lowercase letter is followed by an uppercase letter  (someValue)
//	an uppercase run ends before a capitalized word        (HTMLParser)
//	a letter is followed by a digit                        (value123)
//	a digit is followed by a letter                        (123test)
func splitTransitions(s string, dst []string) []string {
	if s == "" {
		return dst
	}

	start := 0

	for i := 1; i < len(s); i++ {
		if isBoundary(s, i) {
			dst = append(dst, s[start:i])
			start = i
		}
	}

	return append(dst, s[start:])
}

func isBoundary(s string, i int) bool {
	prev, cur := s[i-1], s[i]

	switch {
	case isLower(prev) && isUpper(cur):
		return true
	case isUpper(prev) && isUpper(cur) && i+1 < len(s) && isLower(s[i+1]):
		return true
	case isLetter(prev) && isDigit(cur):
		return true
	case isDigit(prev) && isLetter(cur):
		return true
	default:
		return false
	}
}

func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return isUpper(c) || isLower(c) }
func isAlnum(c byte) bool  { return isLetter(c) || isDigit(c) }
