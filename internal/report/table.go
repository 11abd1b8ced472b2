package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/casefang/internal/lint"
)

func newTable(w io.Writer) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

func writeTable(w io.Writer, rep *lint.Report) error {
	tbl := newTable(w)
	tbl.AppendHeader(table.Row{"File", "Line", "Col", "Constant", "Expected", "Type", "Fix"})

	rows := 0

	for idx := range rep.Files {
		file := &rep.Files[idx]

		if file.Error != "" {
			tbl.AppendRow(table.Row{file.File, "", "", "", "", "", "error: " + file.Error})

			continue
		}

		for _, diag := range file.Diagnostics {
			fix := "yes"
			if diag.Fix == nil {
				fix = "no"
			}

			declType := string(diag.DeclarationType)
			if declType == "" {
				declType = "-"
			}

			tbl.AppendRow(table.Row{
				file.File, diag.Start.Line, diag.Start.Column, diag.Name, diag.Expected, declType, fix,
			})

			rows++
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d", rows), "", "", "", "", "", ""})
	tbl.Render()

	_, err := fmt.Fprintf(w, "%s\n", strings.TrimSpace(rep.Summary.String()))
	if err != nil {
		return fmt.Errorf("write table report: %w", err)
	}

	return nil
}
