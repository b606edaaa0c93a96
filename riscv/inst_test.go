package riscv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(37, len(instMap))
	assert.Equal(24, len(pseudoMap))

	for mnemonic, inst := range instMap {
		assert.True(inst.Format.Valid(), mnemonic)
		assert.NotEmpty(inst.operandPattern(), mnemonic)
	}

	_, ok := Lookup("add")
	assert.True(ok)
	_, ok = Lookup("ADD")
	assert.False(ok)
	_, ok = Lookup("mul")
	assert.False(ok)
}

func TestNewInst(t *testing.T) {
	assert := assert.New(t)

	inst, err := NewInst(FORMAT_R, 0b0110011, 0b000, 0b0100000)
	assert.NoError(err)
	assert.Equal(instMap["sub"], inst)

	_, err = NewInst(Format(0), 0, 0, 0)
	assert.ErrorIs(err, ErrFormatInvalid)
	_, err = NewInst(Format(7), 0, 0, 0)
	assert.ErrorIs(err, ErrFormatInvalid)

	var fr ErrFieldRange
	_, err = NewInst(FORMAT_I, 0x80, 0, 0)
	assert.True(errors.As(err, &fr))
	_, err = NewInst(FORMAT_I, 0, 8, 0)
	assert.True(errors.As(err, &fr))
	_, err = NewInst(FORMAT_I, 0, 0, 0x80)
	assert.True(errors.As(err, &fr))
}

func TestEncodeExact(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		mnemonic string
		fields   Fields
		hex      string
	}{
		{"add", Fields{Rd: 10}, "00000533"},
		{"sub", Fields{Rd: 10, Rs1: 11, Rs2: 12}, "40c58533"},
		{"addi", Fields{Rd: 5, Imm: 5}, "00500293"},
		{"srai", Fields{Rd: 10, Rs1: 11, Imm: 3}, "4035d513"},
		{"lw", Fields{Rd: 10, Rs1: 2, Imm: 4}, "00412503"},
		{"sw", Fields{Rs1: 2, Rs2: 10, Imm: 4}, "00a12223"},
		{"beq", Fields{Rs1: 10, Imm: 8}, "00050463"},
		{"bne", Fields{Rs1: 10, Imm: -4}, "fe051ee3"},
		{"lui", Fields{Rd: 10, Imm: 0x12345}, "12345537"},
		{"jal", Fields{Rd: 0, Imm: 12}, "00c0006f"},
		{"jalr", Fields{Rd: 0, Rs1: 1, Imm: 0}, "00008067"},
	}

	for _, entry := range table {
		inst, ok := Lookup(entry.mnemonic)
		assert.True(ok, entry.mnemonic)

		word, err := inst.Encode(entry.fields)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.hex, word.Hex(), entry.mnemonic)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		mnemonic string
		fields   Fields
	}{
		{"add", Fields{Rd: 10, Rs1: 11, Rs2: 12}},
		{"and", Fields{Rd: 31, Rs1: 31, Rs2: 31}},
		{"sub", Fields{Rd: 1, Rs1: 2, Rs2: 3}},
		{"sra", Fields{Rd: 4, Rs1: 5, Rs2: 6}},
		{"addi", Fields{Rd: 5, Imm: 5}},
		{"addi", Fields{Rd: 1, Rs1: 1, Imm: -2048}},
		{"andi", Fields{Rd: 7, Rs1: 8, Imm: 2047}},
		{"slli", Fields{Rd: 4, Rs1: 4, Imm: 31}},
		{"srli", Fields{Rd: 4, Rs1: 4, Imm: 1}},
		{"srai", Fields{Rd: 10, Rs1: 11, Imm: 3}},
		{"lb", Fields{Rd: 10, Rs1: 2, Imm: -1}},
		{"lw", Fields{Rd: 10, Rs1: 2, Imm: 4}},
		{"sw", Fields{Rs1: 2, Rs2: 10, Imm: 2047}},
		{"sb", Fields{Rs1: 8, Rs2: 9, Imm: -2048}},
		{"beq", Fields{Rs1: 10, Imm: 8}},
		{"bne", Fields{Rs1: 10, Imm: -4}},
		{"bgeu", Fields{Rs1: 30, Rs2: 31, Imm: -4096}},
		{"blt", Fields{Rs1: 1, Rs2: 2, Imm: 4094}},
		{"lui", Fields{Rd: 10, Imm: 0x12345}},
		{"auipc", Fields{Rd: 31, Imm: 0xfffff}},
		{"jal", Fields{Rd: 0, Imm: 12}},
		{"jal", Fields{Rd: 1, Imm: -1048576}},
		{"jalr", Fields{Rd: 0, Rs1: 1, Imm: 0}},
	}

	for _, entry := range table {
		inst, ok := Lookup(entry.mnemonic)
		assert.True(ok, entry.mnemonic)

		word, err := inst.Encode(entry.fields)
		assert.NoError(err, entry.mnemonic)

		mnemonic, fields, err := Decode(word)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.mnemonic, mnemonic)
		assert.Equal(entry.fields, fields, entry.mnemonic)
	}
}

func TestImmediateBoundary(t *testing.T) {
	assert := assert.New(t)

	addi, _ := Lookup("addi")

	_, err := addi.Encode(Fields{Rd: 1, Imm: 2047})
	assert.NoError(err)
	_, err = addi.Encode(Fields{Rd: 1, Imm: -2048})
	assert.NoError(err)

	var ir ErrImmediateRange
	_, err = addi.Encode(Fields{Rd: 1, Imm: 2048})
	assert.True(errors.As(err, &ir))
	assert.Equal(int32(2048), ir.Value)
	_, err = addi.Encode(Fields{Rd: 1, Imm: -2049})
	assert.True(errors.As(err, &ir))

	slli, _ := Lookup("slli")
	_, err = slli.Encode(Fields{Rd: 1, Imm: 31})
	assert.NoError(err)
	_, err = slli.Encode(Fields{Rd: 1, Imm: 32})
	assert.True(errors.As(err, &ir))
	_, err = slli.Encode(Fields{Rd: 1, Imm: -1})
	assert.True(errors.As(err, &ir))

	lui, _ := Lookup("lui")
	_, err = lui.Encode(Fields{Rd: 1, Imm: 0xfffff})
	assert.NoError(err)
	_, err = lui.Encode(Fields{Rd: 1, Imm: 0x100000})
	assert.True(errors.As(err, &ir))
	_, err = lui.Encode(Fields{Rd: 1, Imm: -1})
	assert.True(errors.As(err, &ir))

	beq, _ := Lookup("beq")
	_, err = beq.Encode(Fields{Imm: 4096})
	assert.True(errors.As(err, &ir))
	var mt ErrTargetMisaligned
	_, err = beq.Encode(Fields{Imm: 7})
	assert.True(errors.As(err, &mt))
	assert.Equal(int32(7), int32(mt))

	jal, _ := Lookup("jal")
	_, err = jal.Encode(Fields{Imm: 1048575})
	assert.True(errors.As(err, &ir))
	_, err = jal.Encode(Fields{Imm: 1048573})
	assert.True(errors.As(err, &mt))
}

func TestDecodeUnknown(t *testing.T) {
	assert := assert.New(t)

	var uw ErrUnknownWord

	// Unknown opcodes.
	_, _, err := Decode(Word(0x00000000))
	assert.True(errors.As(err, &uw))
	_, _, err = Decode(Word(0xffffffff))
	assert.True(errors.As(err, &uw))

	// R-type with a funct7 no catalog entry carries.
	_, _, err = Decode(Word(0x2a000033))
	assert.True(errors.As(err, &uw))

	// Branch funct3 gap (010 is unassigned).
	_, _, err = Decode(Word(0x00002063))
	assert.True(errors.As(err, &uw))
}
