package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schoolrun/qa/scenarios"
)

var scenarioDir string

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Evaluate scenario files and report unmet expectations",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().StringVarP(&scenarioDir, "dir", "d", "", "directory of scenario yaml files (defaults to the built-in set)")
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	var (
		scs []*scenarios.Scenario
		err error
	)
	if scenarioDir != "" {
		scs, err = scenarios.LoadDir(scenarioDir)
	} else {
		scs, err = scenarios.Builtin()
	}
	if err != nil {
		return fmt.Errorf("load scenarios: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	outcomes, err := svc.Scenarios(scs)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, o := range outcomes {
		status := "ok  "
		if !o.Passed() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "%s %s/%s: %.1f%%\n", status, o.Scenario, o.Case, o.Prediction.SuccessProbability)
		for _, f := range o.Failures {
			fmt.Fprintf(out, "     %s\n", f)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(outcomes))
	}
	fmt.Fprintf(out, "%d cases passed\n", len(outcomes))
	return nil
}
