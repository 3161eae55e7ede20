// Package commute implements the school commute decision cascade.
//
// Level 1 infers parent B's run duration with a fuzzy rule base and scores
// base parent availability from both wake times. Level 2 adjusts
// availability for the run and maps weather to a travel multiplier. Level 3
// derives breakfast, dressing and transport scores, level 4 consolidates the
// routine and level 5 produces the on-time probability with raise-only
// overrides for very early, dry mornings.
//
// Every stage is a pure function and can be called on its own. Engine wires
// them together and holds no mutable state.
package commute
