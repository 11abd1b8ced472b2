package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/casefang/internal/lsp"
	"github.com/Sumatoshi-tech/casefang/internal/mcp"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/observability"
)

// serveEnv is the shared setup of the long-running modes.
type serveEnv struct {
	providers observability.Providers
	red       *observability.REDMetrics
	opts      constnaming.Options
	stop      context.CancelFunc
}

func startServe(
	cmd *cobra.Command, global *GlobalOptions, mode observability.AppMode, metricsAddr string,
) (*serveEnv, error) {
	cfg, err := global.load()
	if err != nil {
		return nil, err
	}

	if mode == observability.ModeMCP {
		cfg.Logging.JSON = true
	}

	providers, err := initObservability(cfg, mode, metricsAddr != "", cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	red, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		shutdown(cmd, providers)

		return nil, err
	}

	opts, err := cfg.CheckOptions()
	if err != nil {
		shutdown(cmd, providers)

		return nil, err
	}

	ctx, stop := context.WithCancel(cmd.Context())

	if metricsAddr != "" {
		go func() {
			if serveErr := observability.ServeMetrics(ctx, metricsAddr, providers); serveErr != nil {
				providers.Logger.Error("metrics server failed", slog.Any("error", serveErr))
			}
		}()
	}

	return &serveEnv{providers: providers, red: red, opts: opts, stop: stop}, nil
}

func (env *serveEnv) close(cmd *cobra.Command) {
	env.stop()
	shutdown(cmd, env.providers)
}

// NewLSPCommand creates the lsp command.
func NewLSPCommand(global *GlobalOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server (stdio)",
		Long: `Start a Language Server Protocol server on stdio. Diagnostics are published
on open, change and save; quick fixes rename violating constants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := startServe(cmd, global, observability.ModeLSP, metricsAddr)
			if err != nil {
				return err
			}
			defer env.close(cmd)

			checker, err := constnaming.NewChecker(env.opts)
			if err != nil {
				return err
			}

			srv, err := lsp.NewServer(lsp.Deps{
				Checker: checker,
				Logger:  env.providers.Logger,
				Tracer:  env.providers.Tracer,
				Metrics: env.red,
			})
			if err != nil {
				return err
			}

			return srv.Run()
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")

	return cmd
}

// NewMCPCommand creates the mcp command.
func NewMCPCommand(global *GlobalOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server (stdio)",
		Long: `Start a Model Context Protocol server on stdio exposing the tools:
  - casefang_convert: convert an identifier to a case style
  - casefang_detect:  classify an identifier and split it into words
  - casefang_check:   check inline source for constant naming violations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := startServe(cmd, global, observability.ModeMCP, metricsAddr)
			if err != nil {
				return err
			}
			defer env.close(cmd)

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger:   env.providers.Logger,
				Metrics:  env.red,
				Tracer:   env.providers.Tracer,
				Defaults: &env.opts,
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")

	return cmd
}
