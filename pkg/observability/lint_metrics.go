package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal       = "casefang.lint.files.total"
	metricConstantsTotal   = "casefang.lint.constants.total"
	metricViolationsTotal  = "casefang.lint.violations.total"
	metricFixesTotal       = "casefang.lint.fixes.total"
	metricCacheHitsTotal   = "casefang.lint.cache.hits.total"
	metricCacheMissesTotal = "casefang.lint.cache.misses.total"
	metricFileDuration     = "casefang.lint.file.duration.seconds"

	attrLanguage = "language"
	attrOutcome  = "outcome"
)

// File outcomes recorded on casefang.lint.files.total.
const (
	OutcomeClean    = "clean"
	OutcomeViolated = "violated"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// FileStats describes one checked file.
type FileStats struct {
	Language   string
	Outcome    string
	Constants  int
	Violations int
	Fixes      int
	CacheHit   bool
	Duration   time.Duration
}

// LintMetrics holds the instruments recorded by the check runner.
type LintMetrics struct {
	files        metric.Int64Counter
	constants    metric.Int64Counter
	violations   metric.Int64Counter
	fixes        metric.Int64Counter
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	fileDuration metric.Float64Histogram
}

// NewLintMetrics creates the lint instruments from mt.
func NewLintMetrics(mt metric.Meter) (*LintMetrics, error) {
	b := newMetricBuilder(mt)

	lm := &LintMetrics{
		files:        b.counter(metricFilesTotal, "Files processed by outcome", "{file}"),
		constants:    b.counter(metricConstantsTotal, "Top-level constants checked", "{constant}"),
		violations:   b.counter(metricViolationsTotal, "Constants violating the configured style", "{violation}"),
		fixes:        b.counter(metricFixesTotal, "Fixes written back to source files", "{fix}"),
		cacheHits:    b.counter(metricCacheHitsTotal, "Result cache hits", "{hit}"),
		cacheMisses:  b.counter(metricCacheMissesTotal, "Result cache misses", "{miss}"),
		fileDuration: b.histogram(metricFileDuration, "Per-file check duration in seconds", "s", durationBuckets...),
	}

	if b.err != nil {
		return nil, b.err
	}

	return lm, nil
}

// RecordFile records the outcome of one file. Safe to call on a nil receiver.
func (lm *LintMetrics) RecordFile(ctx context.Context, stats FileStats) {
	if lm == nil {
		return
	}

	lang := metric.WithAttributes(attribute.String(attrLanguage, stats.Language))

	lm.files.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrLanguage, stats.Language),
		attribute.String(attrOutcome, stats.Outcome),
	))

	if stats.Outcome == OutcomeSkipped || stats.Outcome == OutcomeFailed {
		return
	}

	lm.constants.Add(ctx, int64(stats.Constants), lang)
	lm.violations.Add(ctx, int64(stats.Violations), lang)
	lm.fixes.Add(ctx, int64(stats.Fixes), lang)

	if stats.CacheHit {
		lm.cacheHits.Add(ctx, 1, lang)
	} else {
		lm.cacheMisses.Add(ctx, 1, lang)
		lm.fileDuration.Record(ctx, stats.Duration.Seconds(), lang)
	}
}
