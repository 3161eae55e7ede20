package scenarios

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/schoolrun/core/model"
)

//go:embed data/*.yaml
var builtin embed.FS

// InputDef is one engine input in label form.
type InputDef struct {
	Weather     string   `yaml:"weather"`
	DayType     string   `yaml:"day_type"`
	ParentAWake *float64 `yaml:"parent_a_wake"`
	ParentBWake *float64 `yaml:"parent_b_wake"`
}

// Request converts the definition for validation by the engine.
func (d InputDef) Request() model.Request {
	return model.Request{Weather: d.Weather, DayType: d.DayType, ParentAWake: d.ParentAWake, ParentBWake: d.ParentBWake}
}

// Bounds is an inclusive range. A nil side is unbounded.
type Bounds struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
	// Eq is shorthand for Min == Max == Eq.
	Eq *float64 `yaml:"eq,omitempty"`
}

// Contains reports whether v lies within the bounds, allowing tol on each side.
func (b Bounds) Contains(v, tol float64) bool {
	lo, hi := b.Min, b.Max
	if b.Eq != nil {
		lo, hi = b.Eq, b.Eq
	}
	if lo != nil && v < *lo-tol {
		return false
	}
	if hi != nil && v > *hi+tol {
		return false
	}
	return true
}

func (b Bounds) String() string {
	f := func(p *float64, def string) string {
		if p == nil {
			return def
		}
		return fmt.Sprintf("%g", *p)
	}
	if b.Eq != nil {
		return "= " + f(b.Eq, "")
	}
	return fmt.Sprintf("[%s, %s]", f(b.Min, "-inf"), f(b.Max, "+inf"))
}

// Case is one evaluated input with its expectations. Expect is keyed by
// success_probability or an intermediate stage name.
type Case struct {
	Name        string            `yaml:"name"`
	Input       InputDef          `yaml:"input"`
	Expect      map[string]Bounds `yaml:"expect"`
	WakeClamped *bool             `yaml:"wake_clamped,omitempty"`
	RunFallback *bool             `yaml:"run_fallback,omitempty"`
}

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// Tolerance applies to every bound. Defaults to 0.01.
	Tolerance float64 `yaml:"tolerance,omitempty"`
	Cases     []Case  `yaml:"cases"`
}

// ProbabilityKey names the final output in Case.Expect.
const ProbabilityKey = "success_probability"

// Validate checks that every case sets both wake times and that every
// expectation names a known value.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	for _, c := range s.Cases {
		if c.Input.ParentAWake == nil || c.Input.ParentBWake == nil {
			return fmt.Errorf("scenario %s case %s: %w: both wake times are required", s.Name, c.Name, model.ErrInvalidWake)
		}
		for key := range c.Expect {
			if key == ProbabilityKey {
				continue
			}
			if _, ok := (model.Intermediates{}).Get(model.Stage(key)); !ok {
				return fmt.Errorf("scenario %s case %s: unknown expectation %q", s.Name, c.Name, key)
			}
		}
	}
	return nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// LoadFS loads every file of fsys matching pattern, sorted by name.
func LoadFS(fsys fs.FS, pattern string) ([]*Scenario, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	out := make([]*Scenario, 0, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		sc, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

// LoadDir loads every *.yaml file of dir.
func LoadDir(dir string) ([]*Scenario, error) {
	return LoadFS(os.DirFS(dir), "*.yaml")
}

// Builtin returns the scenarios shipped with the binary.
func Builtin() ([]*Scenario, error) {
	return LoadFS(builtin, path.Join("data", "*.yaml"))
}

func parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Tolerance == 0 {
		sc.Tolerance = 0.01
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
