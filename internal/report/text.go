package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/casefang/internal/lint"
)

// palette holds the colors used by the text renderer.
type palette struct {
	file    *color.Color
	warning *color.Color
	failure *color.Color
	dim     *color.Color
	success *color.Color
	added   *color.Color
	removed *color.Color
	hunk    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		file:    color.New(color.Underline),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
		success: color.New(color.FgGreen),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		hunk:    color.New(color.FgCyan),
	}

	for _, c := range []*color.Color{p.file, p.warning, p.failure, p.dim, p.success, p.added, p.removed, p.hunk} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func writeText(w io.Writer, rep *lint.Report, pal palette) error {
	var sb strings.Builder

	for idx := range rep.Files {
		file := &rep.Files[idx]

		switch {
		case file.Error != "":
			fmt.Fprintf(&sb, "%s\n  %s %s\n\n", pal.file.Sprint(file.File), pal.failure.Sprint("error"), file.Error)
		case len(file.Diagnostics) > 0:
			writeFileDiagnostics(&sb, file, pal)
		}
	}

	for _, name := range rep.Oversized {
		fmt.Fprintf(&sb, "%s %s\n", pal.dim.Sprint("skipped (too large):"), name)
	}

	writeSummary(&sb, rep.Summary, pal)

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func writeFileDiagnostics(sb *strings.Builder, file *lint.FileReport, pal palette) {
	fmt.Fprintln(sb, pal.file.Sprint(file.File))

	width := 0
	for _, diag := range file.Diagnostics {
		width = max(width, len(fmt.Sprintf("%d:%d", diag.Start.Line, diag.Start.Column)))
	}

	for _, diag := range file.Diagnostics {
		loc := fmt.Sprintf("%d:%d", diag.Start.Line, diag.Start.Column)
		fmt.Fprintf(sb, "  %s%s  %s  %s  %s\n",
			pal.dim.Sprint(loc), strings.Repeat(" ", width-len(loc)),
			pal.warning.Sprint("warning"), diag.Message, pal.dim.Sprint(diag.Rule))
	}

	if file.Fixed > 0 {
		fmt.Fprintf(sb, "  %s\n", pal.success.Sprintf("fixed %d of %d", file.Fixed, len(file.Diagnostics)))
	}

	sb.WriteString("\n")
}

func writeSummary(sb *strings.Builder, sum lint.Summary, pal palette) {
	remaining := sum.Remaining()

	switch {
	case remaining > 0:
		fmt.Fprintln(sb, pal.failure.Sprintf("✖ %s %s", humanize.Comma(int64(remaining)), plural(remaining, "problem", "problems")))
	case sum.Failed > 0:
		fmt.Fprintln(sb, pal.failure.Sprintf("✖ %s %s failed", humanize.Comma(int64(sum.Failed)), plural(sum.Failed, "file", "files")))
	default:
		fmt.Fprintln(sb, pal.success.Sprint("✔ no problems"))
	}

	fmt.Fprintln(sb, sum.String())
	fmt.Fprintln(sb, pal.dim.Sprint(sum.Details()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
