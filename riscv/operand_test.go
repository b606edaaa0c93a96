package riscv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRegisters(t *testing.T) {
	assert := assert.New(t)

	table := map[string]uint32{
		"zero": 0, "ra": 1, "sp": 2, "gp": 3, "tp": 4,
		"t0": 5, "t1": 6, "t2": 7,
		"s0": 8, "fp": 8, "s1": 9,
		"a0": 10, "a1": 11, "a2": 12, "a3": 13,
		"a4": 14, "a5": 15, "a6": 16, "a7": 17,
		"s2": 18, "s11": 27,
		"t3": 28, "t6": 31,
	}

	for alias, reg := range table {
		op, err := Resolve(alias)
		assert.NoError(err, alias)
		assert.Equal(OPERAND_REGISTER, op.Kind, alias)
		assert.Equal(reg, op.Reg, alias)
	}

	for n := uint32(0); n < 32; n++ {
		op, err := Resolve(fmt.Sprintf("x%v", n))
		assert.NoError(err)
		assert.Equal(OPERAND_REGISTER, op.Kind)
		assert.Equal(n, op.Reg)
	}

	var ri ErrRegisterInvalid
	_, err := Resolve("x32")
	assert.True(errors.As(err, &ri))
	_, err = Resolve("x99")
	assert.True(errors.As(err, &ri))
}

func TestResolveImmediates(t *testing.T) {
	assert := assert.New(t)

	table := map[string]int32{
		"0":      0,
		"5":      5,
		"-1":     -1,
		"2047":   2047,
		"-2048":  -2048,
		"0x10":   16,
		"-0x10":  -16,
		"0b1010": 10,
	}

	for token, imm := range table {
		op, err := Resolve(token)
		assert.NoError(err, token)
		assert.Equal(OPERAND_IMMEDIATE, op.Kind, token)
		assert.Equal(imm, op.Imm, token)
	}
}

func TestResolveLabels(t *testing.T) {
	assert := assert.New(t)

	for _, token := range []string{"loop", "_start", ".L1", "end", "x", "x1f"} {
		op, err := Resolve(token)
		assert.NoError(err, token)
		assert.Equal(OPERAND_LABEL, op.Kind, token)
		assert.Equal(token, op.Label, token)
	}
}

func TestResolveInvalid(t *testing.T) {
	assert := assert.New(t)

	var oi ErrOperandInvalid
	for _, token := range []string{"", "4(", "1abc", "a-b", "a0)", "$x"} {
		_, err := Resolve(token)
		assert.True(errors.As(err, &oi), token)
	}
}
