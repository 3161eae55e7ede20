package fuzzy

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownVariable is returned when a rule references an undeclared input.
var ErrUnknownVariable = errors.New("unknown variable")

// Degrees holds fuzzified inputs keyed by variable then term.
type Degrees map[string]map[string]float64

// Antecedent is the condition part of a rule.
type Antecedent interface {
	// Eval returns the truth value of the condition for the given degrees.
	Eval(deg Degrees) float64
	// check verifies every referenced variable and term exists.
	check(vars map[string]*Variable) error
	String() string
}

type isExpr struct {
	variable string
	term     string
}

// Is matches a single term of an input variable.
func Is(variable, term string) Antecedent { return isExpr{variable: variable, term: term} }

func (e isExpr) Eval(deg Degrees) float64 { return deg[e.variable][e.term] }

func (e isExpr) check(vars map[string]*Variable) error {
	v, ok := vars[e.variable]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, e.variable)
	}
	if !v.Has(e.term) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownTerm, e.variable, e.term)
	}
	return nil
}

func (e isExpr) String() string { return e.variable + "=" + e.term }

type andExpr []Antecedent

// And combines conditions with the minimum operator.
func And(parts ...Antecedent) Antecedent { return andExpr(parts) }

func (e andExpr) Eval(deg Degrees) float64 {
	if len(e) == 0 {
		return 0
	}
	v := 1.0
	for _, p := range e {
		v = math.Min(v, p.Eval(deg))
	}
	return v
}

func (e andExpr) check(vars map[string]*Variable) error { return checkAll(e, vars) }

func (e andExpr) String() string { return join(e, " AND ") }

type orExpr []Antecedent

// Or combines conditions with the maximum operator.
func Or(parts ...Antecedent) Antecedent { return orExpr(parts) }

func (e orExpr) Eval(deg Degrees) float64 {
	v := 0.0
	for _, p := range e {
		v = math.Max(v, p.Eval(deg))
	}
	return v
}

func (e orExpr) check(vars map[string]*Variable) error { return checkAll(e, vars) }

func (e orExpr) String() string { return join(e, " OR ") }

func checkAll(parts []Antecedent, vars map[string]*Variable) error {
	for _, p := range parts {
		if err := p.check(vars); err != nil {
			return err
		}
	}
	return nil
}

func join(parts []Antecedent, sep string) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = p.String()
	}
	return "(" + strings.Join(s, sep) + ")"
}

// Rule maps an antecedent to a term of the output variable.
type Rule struct {
	Name string
	If   Antecedent
	Then string
}

func (r Rule) String() string {
	return fmt.Sprintf("%s: IF %s THEN %s", r.Name, r.If, r.Then)
}
