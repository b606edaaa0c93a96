// Package riscv implements a two-pass assembler for the RV32I base
// instruction set.
//
// Source lines have the form "[label:] mnemonic [operand, ...] [# comment]".
// Pass 1 tokenizes the input and binds labels to byte addresses; pass 2
// encodes against the completed symbol table, so forward branch and jump
// references resolve. Pseudo-instructions expand into real instructions
// from a template table. The assembler also supports ".equ NAME VALUE"
// equates and compile-time $( ... ) expression evaluation.
//
// The li pseudo-instruction expands to a single addi, so its immediate is
// limited to the I-type range; larger constants need an explicit lui/addi
// pair.
package riscv
