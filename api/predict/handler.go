package predict

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kilianp07/schoolrun/core/commute"
	"github.com/kilianp07/schoolrun/core/model"
)

// maxBodyBytes bounds a POST body. A request is four scalars.
const maxBodyBytes = 4 << 10

// Predictor evaluates one typed input.
type Predictor interface {
	Predict(in model.Input) (model.Prediction, error)
}

// NewHandler serves predictions. GET reads weather, day, a and b from the
// query string. POST reads a JSON model.Request body. Invalid inputs yield 400.
func NewHandler(p Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			req model.Request
			err error
		)
		switch r.Method {
		case http.MethodGet:
			req, err = fromQuery(r)
		case http.MethodPost:
			err = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			http.Error(w, err.Error(), status)
			return
		}
		in, err := req.Input()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		pred, err := p.Predict(in)
		if err != nil {
			status := http.StatusInternalServerError
			if model.IsInvalid(err) || errors.Is(err, commute.ErrWakeOutOfRange) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(pred); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func fromQuery(r *http.Request) (model.Request, error) {
	q := r.URL.Query()
	a, err := parseWake(q.Get("a"), "a")
	if err != nil {
		return model.Request{}, err
	}
	b, err := parseWake(q.Get("b"), "b")
	if err != nil {
		return model.Request{}, err
	}
	return model.NewRequest(q.Get("weather"), q.Get("day"), a, b), nil
}

func parseWake(s, name string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return v, nil
}
