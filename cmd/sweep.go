package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schoolrun/core/sweep"
	"github.com/kilianp07/schoolrun/pkg/export"
)

var sweepFlags struct {
	format string
	output string
}

var sweepCmd = &cobra.Command{
	Use:       "sweep <kind>",
	Short:     "Run a sensitivity sweep",
	Long:      fmt.Sprintf("Run a sensitivity sweep. Kinds: %v", sweep.Kinds),
	Args:      cobra.ExactArgs(1),
	ValidArgs: kindNames(),
	RunE:      runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&sweepFlags.format, "format", "o", "json", "json or csv")
	sweepCmd.Flags().StringVarP(&sweepFlags.output, "file", "f", "", "write to file instead of stdout")
	rootCmd.AddCommand(sweepCmd)
}

func kindNames() []string {
	out := make([]string, len(sweep.Kinds))
	for i, k := range sweep.Kinds {
		out[i] = string(k)
	}
	return out
}

func runSweep(cmd *cobra.Command, args []string) error {
	kind, err := sweep.ParseKind(args[0])
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(sweepFlags.format)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Sweep(kind)
	if err != nil {
		return err
	}
	var out io.Writer = cmd.OutOrStdout()
	if sweepFlags.output != "" {
		f, err := os.Create(sweepFlags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return export.WriteSweep(out, format, res)
}
