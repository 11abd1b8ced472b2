package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
)

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "convert <identifier>...",
		Short: "Convert identifiers to a case style",
		Example: `  casefang convert --to snake_case XMLHttpRequest
  casefang convert --to screamingSnakeCase maxRetries retryDelay`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := casing.ParseStyle(target)
			if err != nil {
				return err
			}

			var sb strings.Builder

			for _, ident := range args {
				converted, convErr := casing.Convert(ident, style)
				if convErr != nil {
					return convErr
				}

				sb.WriteString(converted)
				sb.WriteByte('\n')
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())

			return err
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "target style: "+styleList())
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
