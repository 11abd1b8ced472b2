package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/casefang/internal/config"
	"github.com/Sumatoshi-tech/casefang/internal/report"
)

// ErrConfigFormat is returned by config show for formats other than yaml and json.
var ErrConfigFormat = errors.New("config show supports yaml and json")

// NewConfigCommand creates the config command group.
func NewConfigCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(newConfigShowCommand(global), newConfigSchemaCommand())

	return cmd
}

func newConfigShowCommand(global *GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := global.load()
			if err != nil {
				return err
			}

			return writeConfig(cmd.OutOrStdout(), cfg, config.ConfigFileUsed(global.ConfigPath), parsed)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatYAML), "output format: yaml, json")

	return cmd
}

// writeConfig renders cfg through its JSON field names so both formats share
// the keys used in .casefang.yaml.
func writeConfig(w io.Writer, cfg *config.Config, source string, format report.Format) error {
	switch format {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(cfg)
	case report.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrConfigFormat, format)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	var tree map[string]any
	if err = json.Unmarshal(raw, &tree); err != nil {
		return err
	}

	if source == "" {
		source = "defaults"
	}

	if _, err = fmt.Fprintf(w, "# source: %s\n", source); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err = enc.Encode(tree); err != nil {
		return err
	}

	return enc.Close()
}

func newConfigSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema configuration is validated against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(config.Schema())

			return err
		},
	}
}
