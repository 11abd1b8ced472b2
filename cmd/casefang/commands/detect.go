package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/casefang/internal/report"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "detect <identifier>...",
		Short: "Classify identifiers and split them into words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			detections := make([]report.Detection, 0, len(args))
			for _, ident := range args {
				detections = append(detections, report.Detect(ident))
			}

			return report.WriteDetections(cmd.OutOrStdout(), detections, parsed)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatTable), "output format: table, json, yaml")

	return cmd
}
