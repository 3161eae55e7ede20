package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schoolrun/core/model"
	"github.com/kilianp07/schoolrun/pkg/export"
)

var predictFlags struct {
	weather string
	day     string
	wakeA   float64
	wakeB   float64
	format  string
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the on-time probability for one morning",
	RunE:  runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictFlags.weather, "weather", "clear", "clear, cloudy, light_rain, heavy_rain or snow")
	f.StringVar(&predictFlags.day, "day", "weekday", "weekday or weekend")
	f.Float64VarP(&predictFlags.wakeA, "parent-a", "a", 6.5, "parent A wake time in decimal hours")
	f.Float64VarP(&predictFlags.wakeB, "parent-b", "b", 6.5, "parent B wake time in decimal hours")
	f.StringVarP(&predictFlags.format, "format", "o", "text", "text, json or csv")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	p, err := svc.PredictLabels(predictFlags.weather, predictFlags.day, predictFlags.wakeA, predictFlags.wakeB, "cli")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch predictFlags.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "csv":
		return export.WritePredictionsCSV(out, []model.Prediction{p})
	case "text":
		fmt.Fprintf(out, "weather=%s day=%s parent_a=%.2f parent_b=%.2f\n",
			p.Input.Weather, p.Input.DayType, p.Input.ParentAWake, p.Input.ParentBWake)
		for _, sv := range p.Intermediates.Stages() {
			fmt.Fprintf(out, "  %-26s %8.2f\n", sv.Name, sv.Value)
		}
		if p.WakeClamped {
			fmt.Fprintln(out, "  wake times clamped to the modeled range")
		}
		if p.RunFallback {
			fmt.Fprintln(out, "  no run rule fired, default run used")
		}
		fmt.Fprintf(out, "success probability: %.1f%%\n", p.SuccessProbability)
		return nil
	default:
		return fmt.Errorf("unsupported format %q", predictFlags.format)
	}
}
