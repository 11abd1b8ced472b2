// Package commands implements the casefang CLI commands.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/casefang/internal/config"
	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
	"github.com/Sumatoshi-tech/casefang/pkg/version"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitFailure    = 2
)

var (
	// ErrViolations is returned by check when remaining violations exceed --max-warnings.
	ErrViolations = errors.New("naming violations found")

	// ErrCheckFailed is returned by check when some files could not be read or parsed.
	ErrCheckFailed = errors.New("files could not be checked")
)

// IsViolations reports whether err signals lint findings rather than a failure.
func IsViolations(err error) bool {
	return errors.Is(err, ErrViolations)
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsViolations(err):
		return ExitViolations
	default:
		return ExitFailure
	}
}

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
}

// NewRootCommand builds the casefang command tree.
func NewRootCommand() *cobra.Command {
	global := &GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "casefang",
		Short: "Identifier case conversion and top-level constant naming checks",
		Long: `casefang detects and converts identifier case styles and checks that
top-level constants in JavaScript, TypeScript, TSX and Go follow one style.

Commands:
  check     Check source files for constant naming violations
  convert   Convert identifiers to a case style
  detect    Classify identifiers and split them into words
  config    Inspect the merged configuration and its schema
  lsp       Serve diagnostics over the Language Server Protocol
  mcp       Serve tools over the Model Context Protocol`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&global.ConfigPath, "config", "", "config file (default .casefang.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&global.Quiet, "quiet", "q", false, "suppress logs below error")

	rootCmd.AddCommand(
		NewCheckCommand(global),
		NewConvertCommand(),
		NewDetectCommand(),
		NewConfigCommand(global),
		NewLSPCommand(global),
		NewMCPCommand(global),
		newVersionCommand(),
	)

	return rootCmd
}

// load reads configuration and applies the verbosity flags.
func (g *GlobalOptions) load() (*config.Config, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	switch {
	case g.Quiet:
		cfg.Logging.Level = "error"
	case g.Verbose:
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}

// initObservability sets up telemetry for mode with logs on logOutput.
func initObservability(
	cfg *config.Config, mode observability.AppMode, prometheus bool, logOutput io.Writer,
) (observability.Providers, error) {
	obsCfg, err := cfg.Observability(mode, version.Version)
	if err != nil {
		return observability.Providers{}, err
	}

	obsCfg.Prometheus = prometheus
	obsCfg.LogOutput = logOutput

	return observability.Init(obsCfg)
}

func shutdown(cmd *cobra.Command, providers observability.Providers) {
	if err := providers.Shutdown(cmd.Context()); err != nil {
		providers.Logger.Warn("observability shutdown failed", slog.Any("error", err))
	}
}

// styleList names the styles identifiers can be converted to, for flag help.
func styleList() string {
	styles := casing.Styles()
	names := make([]string, 0, len(styles))

	for _, style := range styles {
		names = append(names, style.String())
	}

	return strings.Join(names, ", ")
}

// useColor resolves output.color for out.
func useColor(setting string, noColor bool, out io.Writer) bool {
	if noColor {
		return false
	}

	switch setting {
	case "always":
		return true
	case "never":
		return false
	}

	file, ok := out.(*os.File)

	return ok && file == os.Stdout && !color.NoColor
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), version.String()+"\n")

			return err
		},
	}
}
