// Package cpu implements the register machine and its program loader.
//
// The machine has a bank of integer registers (four when checking opcode
// samples, six when running programs) and a closed set of sixteen
// instructions: addition, multiplication, bitwise and, bitwise or,
// assignment, greater-than and equality, each in the addressing mode
// combinations of its operands. The instruction pointer may be bound to a
// register, in which case the program can jump by writing that register.
// A program halts when the instruction pointer leaves the program.
//
// The assembler loads program text of the form `<name> <a> <b> <c>`, with
// an optional `#ip <register>` directive. Lines may also carry a numeric
// opcode in place of the name; such codes stay unbound until the opcode
// mapping is known.
package cpu
