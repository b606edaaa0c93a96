package riscv

import (
	"fmt"
)

// Field is a fixed-width unsigned bit group to be packed into a Word.
type Field struct {
	Value uint32
	Width int
}

// Word is a single 32-bit RISC-V instruction word.
type Word uint32

// Pack concatenates the lowest Width bits of each field, most significant
// field first, into a 32-bit word. The field widths must total 32 bits.
func Pack(fields ...Field) (word Word, err error) {
	var out uint32
	total := 0

	for _, field := range fields {
		if field.Width < 1 || field.Width > 32 {
			err = ErrFieldRange{Value: field.Value, Width: field.Width}
			return
		}
		if field.Width < 32 && field.Value >= uint32(1)<<uint(field.Width) {
			err = ErrFieldRange{Value: field.Value, Width: field.Width}
			return
		}
		out = (out << field.Width) | field.Value
		total += field.Width
	}

	if total != 32 {
		err = ErrPackWidth
		return
	}

	word = Word(out)
	return
}

// Bits returns bits top down to bottom (inclusive) of the word,
// with bit 0 the least significant.
func (word Word) Bits(top, bottom int) uint32 {
	width := uint(top - bottom + 1)
	return uint32((uint64(word) >> uint(bottom)) & ((uint64(1) << width) - 1))
}

// Hex returns the word as 8 lowercase hex digits.
func (word Word) Hex() string {
	return fmt.Sprintf("%08x", uint32(word))
}

// Binary returns the word as 32 binary digits, most significant bit first.
func (word Word) Binary() string {
	return fmt.Sprintf("%032b", uint32(word))
}

func (word Word) String() string {
	return word.Hex()
}
