package riscv

import (
	"iter"
)

// Op is one assembled source statement with its emitted machine words.
// Pseudo-instructions emit more than one word.
type Op struct {
	LineNo int
	Addr   uint32
	Words  []string
	Code   []Word
}

// Program is the result of one assembly run.
type Program struct {
	Ops []Op
}

// Debug locates the source statement that emitted the word at addr.
type Debug struct {
	*Op
	Index int
}

func (prog *Program) Debug(addr uint32) (dbg Debug) {
	for n, op := range prog.Ops {
		if addr >= op.Addr && addr < op.Addr+uint32(4*len(op.Code)) {
			dbg = Debug{
				Op:    &prog.Ops[n],
				Index: int(addr-op.Addr) / 4,
			}
			break
		}
	}

	return
}

// Words yields each emitted word with its byte address, in program order.
func (prog *Program) Words() iter.Seq2[uint32, Word] {
	return func(yield func(addr uint32, word Word) bool) {
		for _, op := range prog.Ops {
			addr := op.Addr
			for n, word := range op.Code {
				if !yield(addr+uint32(4*n), word) {
					return
				}
			}
		}
	}
}

// Binary returns the emitted words in program order.
func (prog *Program) Binary() (bins []uint32) {
	for _, word := range prog.Words() {
		bins = append(bins, uint32(word))
	}

	return
}
