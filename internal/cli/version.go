package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/app"
)

func newVersionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			info := app.Build()
			return render(cmd.OutOrStdout(), output, info, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Version:\t%s\n", info.Version)
				fmt.Fprintf(tw, "Commit:\t%s\n", info.Commit)
				fmt.Fprintf(tw, "Built:\t%s\n", info.BuildTime)
				fmt.Fprintf(tw, "Go:\t%s\n", info.GoVersion)
			})
		},
	}
	addOutputFlag(cmd, &output)

	return cmd
}
