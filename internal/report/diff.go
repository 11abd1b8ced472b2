package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/casefang/internal/lint"
)

const diffContext = 3

type lineOp struct {
	kind byte // ' ', '-' or '+'
	text string
}

// UnifiedDiff returns a unified diff of before and after, or "" when equal.
func UnifiedDiff(name, before, after string) string {
	if before == after {
		return ""
	}

	ops := lineOps(before, after)

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", name, name)

	for _, h := range hunks(ops) {
		writeHunk(&sb, ops, h)
	}

	return sb.String()
}

// WriteDiffs prints a unified diff for every file with pending fixes.
func WriteDiffs(w io.Writer, rep *lint.Report, colored bool) error {
	pal := newPalette(colored)

	var sb strings.Builder

	for idx := range rep.Files {
		file := &rep.Files[idx]
		if file.Patched == nil {
			continue
		}

		for line := range strings.SplitSeq(strings.TrimSuffix(UnifiedDiff(file.File, string(file.Source), string(file.Patched)), "\n"), "\n") {
			sb.WriteString(colorDiffLine(pal, line))
			sb.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}

	return nil
}

func colorDiffLine(pal palette, line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return pal.file.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return pal.hunk.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return pal.removed.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return pal.added.Sprint(line)
	default:
		return line
	}
}

func lineOps(before, after string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp

	for _, d := range diffs {
		kind := byte(' ')

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = '-'
		case diffmatchpatch.DiffInsert:
			kind = '+'
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}

	return ops
}

// hunk is a half-open range of ops.
type hunk struct{ start, end int }

func hunks(ops []lineOp) []hunk {
	var out []hunk

	for idx, op := range ops {
		if op.kind == ' ' {
			continue
		}

		start := max(0, idx-diffContext)
		end := min(len(ops), idx+diffContext+1)

		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)

			continue
		}

		out = append(out, hunk{start: start, end: end})
	}

	return out
}

func writeHunk(sb *strings.Builder, ops []lineOp, h hunk) {
	oldStart, newStart := 1, 1

	for _, op := range ops[:h.start] {
		if op.kind != '+' {
			oldStart++
		}

		if op.kind != '-' {
			newStart++
		}
	}

	oldLen, newLen := 0, 0

	for _, op := range ops[h.start:h.end] {
		if op.kind != '+' {
			oldLen++
		}

		if op.kind != '-' {
			newLen++
		}
	}

	if oldLen == 0 {
		oldStart--
	}

	if newLen == 0 {
		newStart--
	}

	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldLen, newStart, newLen)

	for _, op := range ops[h.start:h.end] {
		sb.WriteByte(op.kind)
		sb.WriteString(op.text)

		if !strings.HasSuffix(op.text, "\n") {
			sb.WriteString("\n\\ No newline at end of file\n")
		}
	}
}
