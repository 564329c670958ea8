package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/faize-ai/vagrant-helpers/internal/vagrantfile"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a Vagrantfile from opts.yaml",
	Long: `Load the env file and options file from the base directory and print the
equivalent Vagrantfile.

Examples:
  vagrant-helpers render
  vagrant-helpers render --dir ~/code/lab -o Vagrantfile
  VAGRANT_HELPERS_OPTS=envs/ci.yaml vagrant-helpers render`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := runPass()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	header := vagrantfile.Header{Source: p.doc.Path, RunID: p.runID}
	if err := vagrantfile.Render(&buf, p.config, header); err != nil {
		return fmt.Errorf("failed to render Vagrantfile: %w", err)
	}

	if renderOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(renderOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	logger.WithField("file", renderOutput).Info("Vagrantfile written")
	return nil
}
