// Package infer recovers the instruction denoted by each numeric opcode
// from observed executions.
//
// Each sample narrows its opcode's candidates to the instructions that
// reproduce the observed register bank. Resolution then repeatedly assigns
// any opcode left with a single unclaimed candidate. A mapping that cannot
// be completed is reported, never guessed.
package infer
