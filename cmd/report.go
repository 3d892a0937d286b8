package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loctree/loctree-go/internal/output"
	"github.com/loctree/loctree-go/pkg/version"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report [directory]",
	Short: "Render the full scan report as JSON or SARIF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		rep, err := loadReport(dir)
		if err != nil {
			return err
		}

		switch reportFormat {
		case "sarif":
			return output.RenderSARIF(os.Stdout, output.BuildSARIF(version.Version, rep))
		case "json":
			return output.RenderJSON(os.Stdout, output.BuildJSONReport(version.Version, rep))
		default:
			return fmt.Errorf("unknown --format %q (want json or sarif)", reportFormat)
		}
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "output format: json or sarif")
	rootCmd.AddCommand(reportCmd)
}
