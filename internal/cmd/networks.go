package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/faize-ai/vagrant-helpers/internal/network"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the host's private IPv4 networks",
	Long: `List the private IPv4 networks attached to this host. A public network
entry with a "network" key is used only when its CIDR equals one of these.`,
	Args: cobra.NoArgs,
	RunE: runNetworks,
}

func init() {
	rootCmd.AddCommand(networksCmd)
}

func runNetworks(cmd *cobra.Command, args []string) error {
	networks, err := network.NewEnumerator(hostInterfaces()).HostNetworks()
	if err != nil {
		return err
	}

	if len(networks) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No private IPv4 networks found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INTERFACE\tCIDR")
	_, _ = fmt.Fprintln(w, "---------\t----")
	for _, n := range networks {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", n.Interface, n.String())
	}
	return w.Flush()
}
