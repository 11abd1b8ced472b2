// Package report renders lint results and identifier detections.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/casefang/internal/lint"
	"github.com/Sumatoshi-tech/casefang/pkg/levenshtein"
)

// Format selects a renderer.
type Format string

// Output formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for a format name that has no renderer.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))

	switch format {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "":
		return FormatText, nil
	default:
		names := make([]string, 0, len(Formats()))
		for _, known := range Formats() {
			names = append(names, string(known))
		}

		return "", fmt.Errorf("%w: %q%s", ErrUnknownFormat, name, levenshtein.Hint(name, names))
	}
}

// Options controls rendering.
type Options struct {
	Format Format
	Color  bool
}

// Write renders rep to w.
func Write(w io.Writer, rep *lint.Report, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, rep, newPalette(opts.Color))
	case FormatTable:
		return writeTable(w, rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}
