package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Sumatoshi-tech/casefang/internal/config"
	"github.com/Sumatoshi-tech/casefang/internal/lint"
	"github.com/Sumatoshi-tech/casefang/internal/report"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
	"github.com/Sumatoshi-tech/casefang/pkg/resultcache"
)

const unlimitedWarnings = -1

// CheckCommand holds the flags of `casefang check`.
type CheckCommand struct {
	global *GlobalOptions

	casing          string
	pattern         string
	skip            []string
	exclude         []string
	includeExported bool
	fix             bool
	diff            bool
	format          string
	noColor         bool
	noCache         bool
	workers         int
	maxWarnings     int
}

// NewCheckCommand creates the check command.
func NewCheckCommand(global *GlobalOptions) *cobra.Command {
	cc := &CheckCommand{global: global}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check top-level constants for naming violations",
		Long: `Check top-level constant declarations in JavaScript, TypeScript, TSX and Go
files. Directories are walked recursively; vendored paths and lint.exclude
patterns are skipped. Defaults to the current directory.`,
		RunE: cc.run,
	}

	flags := cmd.Flags()
	flags.StringVar(&cc.casing, "casing", "", "required style: "+styleList())
	flags.StringVar(&cc.pattern, "pattern", "", "only check files matching this glob")
	flags.StringSliceVar(&cc.skip, "skip", nil, "skip constants initialized with: string, number, boolean, array, object, function")
	flags.StringSliceVar(&cc.exclude, "exclude", nil, "additional exclude globs")
	flags.BoolVar(&cc.includeExported, "include-exported", false, "also check exported declarations")
	flags.BoolVar(&cc.fix, "fix", false, "write fixes to files")
	flags.BoolVar(&cc.diff, "diff", false, "print a unified diff of fixes")
	flags.StringVar(&cc.format, "format", "", "output format: text, table, json, yaml")
	flags.BoolVar(&cc.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&cc.noCache, "no-cache", false, "disable the result cache")
	flags.IntVar(&cc.workers, "workers", 0, "parallel workers (0 = CPU count)")
	flags.IntVar(&cc.maxWarnings, "max-warnings", 0, "fail when more violations remain (-1 = unlimited)")

	return cmd
}

// applyFlags overrides configuration values with flags set on the command line.
func (cc *CheckCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("casing") {
		cfg.Rule.Casing = cc.casing
	}

	if flags.Changed("pattern") {
		cfg.Rule.Pattern = cc.pattern
	}

	if flags.Changed("skip") {
		cfg.Rule.SkipDeclarationTypes = cc.skip
	}

	if flags.Changed("include-exported") {
		cfg.Rule.IncludeExported = cc.includeExported
	}

	if flags.Changed("format") {
		cfg.Output.Format = cc.format
	}

	if flags.Changed("workers") {
		cfg.Lint.Workers = cc.workers
	}

	if cc.noCache {
		cfg.Cache.Enabled = false
	}

	cfg.Lint.Exclude = append(cfg.Lint.Exclude, cc.exclude...)

	return cfg.Validate()
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := cc.global.load()
	if err != nil {
		return err
	}

	if err = cc.applyFlags(cmd, cfg); err != nil {
		return err
	}

	providers, err := initObservability(cfg, observability.ModeCLI, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdown(cmd, providers)

	ctx, span := providers.Tracer.Start(cmd.Context(), "casefang.check")
	defer span.End()

	runner, err := cc.newRunner(cfg, providers)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	rep, err := runner.Run(ctx, paths)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	span.SetAttributes(
		attribute.Int("casefang.files", rep.Summary.Files),
		attribute.Int("casefang.violations", rep.Summary.Violations),
	)

	if err = cc.render(cmd, cfg, rep); err != nil {
		return err
	}

	return cc.verdict(rep.Summary)
}

func (cc *CheckCommand) newRunner(cfg *config.Config, providers observability.Providers) (*lint.Runner, error) {
	opts, err := cfg.CheckOptions()
	if err != nil {
		return nil, err
	}

	checker, err := constnaming.NewChecker(opts)
	if err != nil {
		return nil, err
	}

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewLintMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	return lint.NewRunner(lint.Config{
		Checker:     checker,
		Workers:     cfg.Lint.Workers,
		MaxFileSize: maxSize,
		Exclude:     cfg.Lint.Exclude,
		Cache:       openCache(cfg, providers.Logger),
		Fix:         cc.fix,
		KeepSources: cc.diff,
		Logger:      providers.Logger,
		Tracer:      providers.Tracer,
		Metrics:     metrics,
	})
}

// openCache returns the configured store, or nil when caching is off or the
// directory is unusable.
func openCache(cfg *config.Config, logger *slog.Logger) *resultcache.Store {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error

		dir, err = resultcache.DefaultDir()
		if err != nil {
			logger.Warn("result cache disabled", slog.Any("error", err))

			return nil
		}
	}

	store, err := resultcache.Open(dir)
	if err != nil {
		logger.Warn("result cache disabled", slog.String("dir", dir), slog.Any("error", err))

		return nil
	}

	logger.Debug("result cache enabled", slog.String("dir", store.Dir()))

	return store
}

func (cc *CheckCommand) render(cmd *cobra.Command, cfg *config.Config, rep *lint.Report) error {
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colored := useColor(cfg.Output.Color, cc.noColor, out)

	if cc.diff {
		diffOut := out
		if format == report.FormatJSON || format == report.FormatYAML {
			// Keep structured stdout parseable.
			diffOut = cmd.ErrOrStderr()
		}

		if err = report.WriteDiffs(diffOut, rep, colored); err != nil {
			return err
		}
	}

	return report.Write(out, rep, report.Options{Format: format, Color: colored})
}

func (cc *CheckCommand) verdict(sum lint.Summary) error {
	if sum.Failed > 0 {
		return fmt.Errorf("%w: %d", ErrCheckFailed, sum.Failed)
	}

	if cc.maxWarnings == unlimitedWarnings {
		return nil
	}

	if remaining := sum.Remaining(); remaining > cc.maxWarnings {
		return fmt.Errorf("%w: %d remaining (max %d)", ErrViolations, remaining, cc.maxWarnings)
	}

	return nil
}
