// Package optimize rewrites hot loops of a program into fast paths.
//
// A Rule names an instruction range [Start, End) whose net effect is known
// in closed form. Apply puts the rule's fast path at Start and no-ops over
// the rest of the range, so control flow entering the range at Start
// leaves it at End as before. Rules come from the caller, either as Go
// functions or as Starlark scripts (see LoadRules), because the range and
// its closed form are found by reading one particular program.
//
// Verify runs the original range and the fast path from sample register
// banks, and reports any difference.
package optimize
