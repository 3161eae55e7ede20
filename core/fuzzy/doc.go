// Package fuzzy implements a small Mamdani inference toolkit.
//
// Membership shapes are sampled over a discretized Domain and queried by
// linear interpolation. A System evaluates a rule table with max-min
// composition and defuzzifies the aggregate by centroid.
//
// Available building blocks:
//   - Domain: evenly spaced samples over a closed interval
//   - Shape: trapezoid or triangle breakpoints
//   - Variable: a named domain with labeled terms
//   - Antecedent: Is, And, Or expressions over input variables
//   - System: rule evaluation, aggregation and defuzzification
package fuzzy
