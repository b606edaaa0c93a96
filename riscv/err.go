package riscv

import (
	"errors"

	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var (
	// Assembler directive errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))

	// Bit packing invariant violations
	ErrPackWidth     = errors.New(f("packed fields must total 32 bits"))
	ErrFormatInvalid = errors.New(f("invalid instruction format"))
)

// ErrUnknownInstruction reports a mnemonic with no catalog entry.
type ErrUnknownInstruction string

func (err ErrUnknownInstruction) Error() string {
	return f("unknown instruction '%v'", string(err))
}

// ErrOperandInvalid reports a token that is not a register, number, or label.
type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not a register, number, or label", string(err))
}

// ErrRegisterInvalid reports a malformed or out-of-range register token.
type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a valid register", string(err))
}

// ErrOperandCount reports an operand count that does not match the
// instruction's format.
type ErrOperandCount struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err ErrOperandCount) Error() string {
	return f("'%v' expects %v operands, got %v", err.Mnemonic, err.Want, err.Got)
}

// ErrImmediateRange reports an immediate outside its field's range.
type ErrImmediateRange struct {
	Value int32
	Min   int32
	Max   int32
}

func (err ErrImmediateRange) Error() string {
	return f("immediate %v outside range %v..%v", err.Value, err.Min, err.Max)
}

// ErrLabelMissing reports a label referenced but never declared.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v missing", string(err))
}

// ErrTargetMisaligned reports an odd branch or jump byte offset.
type ErrTargetMisaligned int32

func (err ErrTargetMisaligned) Error() string {
	return f("branch target offset %v is odd", int32(err))
}

// ErrFieldRange reports a value that does not fit its declared bit width.
// Upstream validation makes this unreachable from well-formed source.
type ErrFieldRange struct {
	Value uint32
	Width int
}

func (err ErrFieldRange) Error() string {
	return f("value %#x does not fit in %v bits", err.Value, err.Width)
}

// ErrUnknownWord reports a word that decodes to no catalog instruction.
type ErrUnknownWord Word

func (err ErrUnknownWord) Error() string {
	return f("word %v decodes to no instruction", Word(err).Hex())
}

// ErrParseExpression reports a malformed $( ... ) expression.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax wraps any assembly error with its source location.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
