package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate opts.yaml and summarize its machines",
	Long:  `Run the full configuration pass without writing anything and list the machines it defines.`,
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := runPass()
	if err != nil {
		return err
	}

	summaries := p.config.Summaries()
	if len(summaries) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No machines defined.")
		return nil
	}

	// Create tabwriter for aligned output
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tBOX\tMEMORY\tCPUS\tNETWORKS\tFOLDERS\tDISKS")
	_, _ = fmt.Fprintln(w, "----\t---\t------\t----\t--------\t-------\t-----")

	for _, s := range summaries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			s.Name,
			s.Box,
			s.Memory,
			s.CPUs,
			s.Networks,
			s.Folders,
			s.Disks,
		)
	}

	return w.Flush()
}
