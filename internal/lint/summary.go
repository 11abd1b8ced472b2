package lint

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary aggregates a run.
type Summary struct {
	Files      int           `json:"files"      yaml:"files"`
	Constants  int           `json:"constants"  yaml:"constants"`
	Violations int           `json:"violations" yaml:"violations"`
	Fixed      int           `json:"fixed"      yaml:"fixed"`
	Skipped    int           `json:"skipped"    yaml:"skipped"`
	Failed     int           `json:"failed"     yaml:"failed"`
	CacheHits  int           `json:"cache_hits" yaml:"cache_hits"`
	Bytes      int64         `json:"bytes"      yaml:"bytes"`
	Duration   time.Duration `json:"duration"   yaml:"duration"`
}

// Remaining returns violations left after fixes.
func (s Summary) Remaining() int {
	return s.Violations - s.Fixed
}

// String renders e.g. "Checked 1,234 constants in 56 files (1.2 MB)".
func (s Summary) String() string {
	return fmt.Sprintf("Checked %s %s in %s %s (%s)",
		humanize.Comma(int64(s.Constants)), plural(s.Constants, "constant", "constants"),
		humanize.Comma(int64(s.Files)), plural(s.Files, "file", "files"),
		humanize.Bytes(uint64(max(s.Bytes, 0))))
}

// Details renders the violation, fix and skip counters.
func (s Summary) Details() string {
	return fmt.Sprintf("%s %s, %s fixed, %s skipped, %s failed, %s cached, took %s",
		humanize.Comma(int64(s.Violations)), plural(s.Violations, "violation", "violations"),
		humanize.Comma(int64(s.Fixed)),
		humanize.Comma(int64(s.Skipped)),
		humanize.Comma(int64(s.Failed)),
		humanize.Comma(int64(s.CacheHits)),
		s.Duration.Round(time.Millisecond))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

func summarize(files []FileReport, oversized int, elapsed time.Duration) Summary {
	sum := Summary{Skipped: oversized, Duration: elapsed}

	for idx := range files {
		file := &files[idx]

		switch {
		case file.Error != "":
			sum.Failed++

			continue
		case file.Skipped:
			sum.Skipped++

			continue
		}

		sum.Files++
		sum.Bytes += file.Size
		sum.Constants += file.Constants
		sum.Violations += len(file.Diagnostics)
		sum.Fixed += file.Fixed

		if file.CacheHit {
			sum.CacheHits++
		}
	}

	return sum
}
