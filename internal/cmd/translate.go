package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faize-ai/vagrant-helpers/internal/hostpath"
)

var translateCmd = &cobra.Command{
	Use:   "translate <path>",
	Short: "Show how a storage path is resolved on this host",
	Long: `Print the local form of a host path, as used when deciding whether a
storage disk already exists. Drive-letter paths such as C:\vms\disk.vdi are
passed to the path translator (wslpath by default). Relative paths are taken
from --dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t := hostpath.NewTranslator(settings.PathTranslator, settings.Dir)
		local := t.Resolve(args[0])

		exists := "missing"
		if t.Exists(args[0]) {
			exists = "exists"
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", local, exists)
		return err
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
}
