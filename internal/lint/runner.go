// Package lint runs the top-level constant naming check over files and
// directory trees using a bounded worker pool.
package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
	"github.com/Sumatoshi-tech/casefang/pkg/resultcache"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

// ErrNoChecker is returned by NewRunner when Config.Checker is nil.
var ErrNoChecker = errors.New("lint: checker is required")

// Config wires a Runner.
type Config struct {
	// Checker runs the rule. Required.
	Checker *constnaming.Checker

	// Workers bounds concurrent file checks. Zero or less means runtime.NumCPU.
	Workers int

	// MaxFileSize skips larger files. Zero disables the limit.
	MaxFileSize int64

	// Exclude lists gobwas/glob patterns matched against paths relative to each root.
	Exclude []string

	// Cache stores results across runs. Nil disables caching.
	Cache *resultcache.Store

	// Fix writes fixes back to disk.
	Fix bool

	// KeepSources retains the original and fixed content of violating files
	// so callers can render diffs without writing.
	KeepSources bool

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.LintMetrics
}

// FileReport is the outcome for one file.
type FileReport struct {
	constnaming.Result `yaml:",inline"`

	Size     int64  `json:"size"            yaml:"size"`
	CacheHit bool   `json:"cache_hit"       yaml:"cache_hit"`
	Fixed    int    `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`

	// Source and Patched are set when KeepSources is on and a fix applies.
	Source  []byte `json:"-" yaml:"-"`
	Patched []byte `json:"-" yaml:"-"`
}

// Remaining returns the violations a fix did not resolve.
func (f *FileReport) Remaining() int {
	return len(f.Diagnostics) - f.Fixed
}

// Report is the outcome of a run. Files are sorted by path.
type Report struct {
	Files     []FileReport `json:"files"     yaml:"files"`
	Oversized []string     `json:"oversized" yaml:"oversized"`
	Summary   Summary      `json:"summary"   yaml:"summary"`
}

// Runner checks files concurrently. It is safe to reuse across runs.
type Runner struct {
	cfg      Config
	excludes excludeSet
	workers  int
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Checker == nil {
		return nil, ErrNoChecker
	}

	excludes, err := compileExcludes(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = max(1, runtime.NumCPU())
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("casefang/lint")
	}

	return &Runner{cfg: cfg, excludes: excludes, workers: workers, logger: logger, tracer: tracer}, nil
}

// Run checks every supported file under paths. Per-file failures are reported
// in FileReport.Error; only walk failures and cancellation abort the run.
func (r *Runner) Run(ctx context.Context, paths []string) (*Report, error) {
	started := time.Now()

	w := &walker{excludes: r.excludes, maxFileSize: r.cfg.MaxFileSize}

	files, err := w.collect(paths)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "collected files", "count", len(files), "oversized", len(w.oversized))

	reports := make([]FileReport, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for idx, file := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			reports[idx] = r.checkFile(gctx, file)

			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	reports = slices.DeleteFunc(reports, func(rep FileReport) bool {
		return rep.Language == sourcelang.Unknown && rep.Error == ""
	})

	slices.SortFunc(reports, func(a, b FileReport) int {
		return strings.Compare(a.File, b.File)
	})

	report := &Report{Files: reports, Oversized: w.oversized}
	report.Summary = summarize(reports, len(w.oversized), time.Since(started))

	if r.cfg.Cache != nil {
		stats := r.cfg.Cache.Stats()
		r.logger.DebugContext(ctx, "result cache", "hits", stats.Hits, "misses", stats.Misses, "hit_rate", stats.HitRate())
	}

	return report, nil
}

func (r *Runner) checkFile(ctx context.Context, file candidate) FileReport {
	started := time.Now()

	ctx, span := r.tracer.Start(ctx, "casefang.lint.file",
		trace.WithAttributes(attribute.String("casefang.file", file.path)))
	defer span.End()

	rep := FileReport{Size: file.size}
	rep.File = filepath.ToSlash(file.path)

	stats := observability.FileStats{Outcome: observability.OutcomeFailed}

	defer func() {
		stats.Language = string(rep.Language)
		stats.Duration = time.Since(started)
		r.cfg.Metrics.RecordFile(ctx, stats)
	}()

	content, err := os.ReadFile(file.path)
	if err != nil {
		return r.fail(ctx, span, rep, err)
	}

	rep.Language = sourcelang.Detect(file.path, content)
	if !rep.Language.Supported() {
		stats.Outcome = observability.OutcomeSkipped

		return rep
	}

	span.SetAttributes(attribute.String("casefang.language", string(rep.Language)))

	res, hit, err := r.result(ctx, rep.File, rep.Language, content)
	if err != nil {
		return r.fail(ctx, span, rep, err)
	}

	rep.Result = res
	rep.CacheHit = hit
	stats.CacheHit = hit

	if res.Skipped {
		stats.Outcome = observability.OutcomeSkipped

		return rep
	}

	stats.Constants = res.Constants
	stats.Violations = len(res.Diagnostics)
	stats.Outcome = observability.OutcomeClean

	if len(res.Diagnostics) == 0 {
		return rep
	}

	stats.Outcome = observability.OutcomeViolated

	if r.cfg.Fix || r.cfg.KeepSources {
		if err = r.fix(ctx, file.path, content, &rep); err != nil {
			return r.fail(ctx, span, rep, err)
		}

		stats.Fixes = rep.Fixed
	}

	span.SetAttributes(attribute.Int("casefang.violations", len(res.Diagnostics)))

	return rep
}

func (r *Runner) result(
	ctx context.Context, name string, lang sourcelang.Language, content []byte,
) (constnaming.Result, bool, error) {
	var key string

	if r.cfg.Cache != nil {
		key = resultcache.Key(r.cfg.Checker.Options().Fingerprint(), name, content)

		if res, ok := r.cfg.Cache.Get(key); ok {
			return res, true, nil
		}
	}

	res, err := r.cfg.Checker.CheckLanguage(ctx, lang, name, content)
	if err != nil {
		return constnaming.Result{}, false, err
	}

	if r.cfg.Cache != nil {
		if putErr := r.cfg.Cache.Put(key, res); putErr != nil {
			r.logger.WarnContext(ctx, "cache write failed", "file", name, "error", putErr)
		}
	}

	return res, false, nil
}

func (r *Runner) fix(ctx context.Context, name string, content []byte, rep *FileReport) error {
	patched, applied := constnaming.ApplyFixes(content, rep.Diagnostics)
	if applied == 0 {
		return nil
	}

	if r.cfg.KeepSources {
		rep.Source = content
		rep.Patched = patched
	}

	if !r.cfg.Fix {
		return nil
	}

	info, err := os.Stat(name)
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	if err = os.WriteFile(name, patched, info.Mode().Perm()); err != nil {
		return fmt.Errorf("write fixes to %s: %w", name, err)
	}

	rep.Fixed = applied

	r.logger.InfoContext(ctx, "applied fixes", "file", name, "fixes", applied)

	return nil
}

func (r *Runner) fail(ctx context.Context, span trace.Span, rep FileReport, err error) FileReport {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	level := slog.LevelWarn
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		level = slog.LevelDebug
	}

	r.logger.Log(ctx, level, "check failed", "file", rep.File, "error", err)

	rep.Error = err.Error()

	return rep
}
