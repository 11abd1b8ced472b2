package constnaming

import (
	"cmp"
	"fmt"
	"slices"
)

// Position is a 1-based line and byte column.
type Position struct {
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Fix replaces the source bytes [Start, End) with Replacement.
type Fix struct {
	Start       int    `json:"start"       yaml:"start"`
	End         int    `json:"end"         yaml:"end"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Diagnostic reports a constant whose name does not follow the configured style.
type Diagnostic struct {
	File            string          `json:"file"                       yaml:"file"`
	Rule            string          `json:"rule"                       yaml:"rule"`
	Name            string          `json:"name"                       yaml:"name"`
	Expected        string          `json:"expected"                   yaml:"expected"`
	Message         string          `json:"message"                    yaml:"message"`
	DeclarationType DeclarationType `json:"declaration_type,omitempty" yaml:"declaration_type,omitempty"`
	Start           Position        `json:"start"                      yaml:"start"`
	End             Position        `json:"end"                        yaml:"end"`
	StartByte       int             `json:"start_byte"                 yaml:"start_byte"`
	EndByte         int             `json:"end_byte"                   yaml:"end_byte"`
	Fix             *Fix            `json:"fix,omitempty"              yaml:"fix,omitempty"`
}

func message(name, expected string) string {
	return fmt.Sprintf("Constant %s should be styled as %s", name, expected)
}

// ApplyFixes rewrites src with the fixes carried by diags and returns the new
// source with the number of fixes applied. Fixes are applied from the end of the
// file backwards; a fix overlapping one already applied is dropped.
func ApplyFixes(src []byte, diags []Diagnostic) ([]byte, int) {
	fixes := make([]Fix, 0, len(diags))

	for _, d := range diags {
		if d.Fix != nil && d.Fix.Start >= 0 && d.Fix.Start <= d.Fix.End && d.Fix.End <= len(src) {
			fixes = append(fixes, *d.Fix)
		}
	}

	if len(fixes) == 0 {
		return src, 0
	}

	slices.SortFunc(fixes, func(a, b Fix) int {
		return cmp.Or(cmp.Compare(b.Start, a.Start), cmp.Compare(b.End, a.End))
	})

	out := slices.Clone(src)
	applied := 0
	limit := len(src)

	for _, fix := range fixes {
		if fix.End > limit {
			continue
		}

		out = slices.Concat(out[:fix.Start], []byte(fix.Replacement), out[fix.End:])
		limit = fix.Start
		applied++
	}

	return out, applied
}
