package sweeps

import (
	"errors"
	"net/http"

	"github.com/kilianp07/schoolrun/core/sweep"
	"github.com/kilianp07/schoolrun/pkg/export"
)

// Runner computes sweeps.
type Runner interface {
	Sweep(kind sweep.Kind) (sweep.Result, error)
}

// NewHandler serves GET /api/sweep?kind=<kind>&format=json|csv.
func NewHandler(r Runner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q := req.URL.Query()
		kind, err := sweep.ParseKind(q.Get("kind"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format := export.FormatJSON
		if f := q.Get("format"); f != "" {
			if format, err = export.ParseFormat(f); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		res, err := r.Sweep(kind)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, sweep.ErrUnknownKind) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		if format == export.FormatCSV {
			w.Header().Set("Content-Type", "text/csv")
		} else {
			w.Header().Set("Content-Type", "application/json")
		}
		if err := export.WriteSweep(w, format, res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
