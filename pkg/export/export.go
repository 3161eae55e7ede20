package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/schoolrun/core/model"
	"github.com/kilianp07/schoolrun/core/sweep"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// WriteSweep writes res to w in the requested format.
func WriteSweep(w io.Writer, f Format, res sweep.Result) error {
	if f == FormatCSV {
		return WriteCSV(w, res)
	}
	return WriteJSON(w, res)
}

// WriteJSON writes the sweep result to w in JSON format.
func WriteJSON(w io.Writer, res sweep.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the sweep result to w in CSV format. Series are written
// one row per point. A grid is written in long form, one row per cell.
func WriteCSV(w io.Writer, res sweep.Result) error {
	cw := csv.NewWriter(w)
	if res.Grid != nil {
		if err := cw.Write([]string{"parent_a_wake", "parent_b_wake", "success_probability"}); err != nil {
			return err
		}
		for i, a := range res.Grid.A {
			for j, b := range res.Grid.B {
				if err := cw.Write([]string{ftoa(a), ftoa(b), ftoa(res.Grid.Values[i][j])}); err != nil {
					return err
				}
			}
		}
	} else {
		if err := cw.Write([]string{"series", "x", "y", "label"}); err != nil {
			return err
		}
		for _, s := range res.Series {
			for _, p := range s.Points {
				if err := cw.Write([]string{s.Name, ftoa(p.X), ftoa(p.Y), p.Label}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePredictionsCSV writes one row per prediction: inputs, every
// intermediate in production order, then the probability.
func WritePredictionsCSV(w io.Writer, preds []model.Prediction) error {
	cw := csv.NewWriter(w)
	header := []string{"weather", "day_type", "parent_a_wake", "parent_b_wake"}
	for _, s := range model.StageOrder {
		header = append(header, string(s))
	}
	header = append(header, "success_probability")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range preds {
		rec := []string{
			p.Input.Weather.String(),
			p.Input.DayType.String(),
			ftoa(p.Input.ParentAWake),
			ftoa(p.Input.ParentBWake),
		}
		for _, sv := range p.Intermediates.Stages() {
			rec = append(rec, ftoa(sv.Value))
		}
		rec = append(rec, ftoa(p.SuccessProbability))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
