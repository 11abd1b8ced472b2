package lsp

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/Sumatoshi-tech/casefang/pkg/safeconv"
)

// lineIndex converts byte offsets into LSP positions, whose characters are
// UTF-16 code units.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) lineIndex {
	starts := []int{0}

	for idx := range len(text) {
		if text[idx] == '\n' {
			starts = append(starts, idx+1)
		}
	}

	return lineIndex{text: text, starts: starts}
}

func (li lineIndex) position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(li.text))
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1

	character := utf16Len(li.text[li.starts[line]:offset])

	return protocol.Position{Line: safeconv.ClampUint32(line), Character: safeconv.ClampUint32(character)}
}

func utf16Len(s string) int {
	n := 0

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if r == utf8.RuneError && size == 1 {
			n++

			continue
		}

		n += utf16.RuneLen(r)
	}

	return n
}

func positionBefore(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}

	return a.Character < b.Character
}

// overlaps reports whether two ranges share at least one position. Touching
// ranges overlap so a cursor at either end of an identifier selects it.
func overlaps(a, b protocol.Range) bool {
	return !positionBefore(a.End, b.Start) && !positionBefore(b.End, a.Start)
}
