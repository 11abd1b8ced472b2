package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
)

// Detection describes one identifier.
type Detection struct {
	Identifier string       `json:"identifier" yaml:"identifier"`
	Style      casing.Style `json:"style"      yaml:"style"`
	Words      []string     `json:"words"      yaml:"words"`
}

// Detect classifies and segments ident.
func Detect(ident string) Detection {
	style := casing.Detect(ident)

	return Detection{Identifier: ident, Style: style, Words: casing.Segment(ident, style)}
}

// WriteDetections renders detections. Text and table formats share the table layout.
func WriteDetections(w io.Writer, detections []Detection, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, detections)
	case FormatYAML:
		return writeYAML(w, detections)
	case FormatText, FormatTable, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"Identifier", "Style", "Words"})

	for _, det := range detections {
		tbl.AppendRow(table.Row{det.Identifier, det.Style.String(), strings.Join(det.Words, " ")})
	}

	tbl.Render()

	return nil
}
