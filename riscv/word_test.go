package riscv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPack(t *testing.T) {
	assert := assert.New(t)

	word, err := Pack(Field{0xdead, 16}, Field{0xbeef, 16})
	assert.NoError(err)
	assert.Equal(Word(0xdeadbeef), word)

	word, err = Pack(Field{0, 1}, Field{0x7fffffff, 31})
	assert.NoError(err)
	assert.Equal(Word(0x7fffffff), word)

	word, err = Pack(Field{0x12345678, 32})
	assert.NoError(err)
	assert.Equal(Word(0x12345678), word)

	// Value does not fit its declared width.
	_, err = Pack(Field{2, 1}, Field{0, 31})
	var fr ErrFieldRange
	assert.True(errors.As(err, &fr))
	assert.Equal(uint32(2), fr.Value)
	assert.Equal(1, fr.Width)

	// Degenerate widths.
	_, err = Pack(Field{0, 0}, Field{0, 32})
	assert.True(errors.As(err, &fr))
	_, err = Pack(Field{0, 33})
	assert.True(errors.As(err, &fr))

	// Widths must total 32.
	_, err = Pack(Field{0, 16})
	assert.ErrorIs(err, ErrPackWidth)
	_, err = Pack(Field{0, 16}, Field{0, 16}, Field{0, 1})
	assert.ErrorIs(err, ErrPackWidth)
}

func TestBits(t *testing.T) {
	assert := assert.New(t)

	word := Word(0xdeadbeef)

	assert.Equal(uint32(0xdeadbeef), word.Bits(31, 0))
	assert.Equal(uint32(0xdead), word.Bits(31, 16))
	assert.Equal(uint32(0xbeef), word.Bits(15, 0))
	assert.Equal(uint32(1), word.Bits(0, 0))
	assert.Equal(uint32(1), word.Bits(31, 31))

	inst := Word(0x00000533)
	assert.Equal(uint32(0b0110011), inst.Bits(6, 0))
	assert.Equal(uint32(10), inst.Bits(11, 7))
	assert.Equal(uint32(0), inst.Bits(14, 12))
	assert.Equal(uint32(0), inst.Bits(19, 15))
	assert.Equal(uint32(0), inst.Bits(24, 20))
	assert.Equal(uint32(0), inst.Bits(31, 25))
}

func TestRender(t *testing.T) {
	assert := assert.New(t)

	word := Word(0x00000533)
	assert.Equal("00000533", word.Hex())
	assert.Equal("00000000000000000000010100110011", word.Binary())
	assert.Equal("00000533", word.String())

	assert.Equal("deadbeef", Word(0xdeadbeef).Hex())
	assert.Equal("00000000", Word(0).Hex())
}
