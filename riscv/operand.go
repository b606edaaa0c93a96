package riscv

import (
	"regexp"
	"strconv"
)

// OperandKind tags the resolved form of a textual operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REGISTER  = OperandKind(0) // register
	OPERAND_IMMEDIATE = OperandKind(1) // immediate
	OPERAND_LABEL     = OperandKind(2) // label
)

// Operand is the resolved form of a single operand token.
type Operand struct {
	Kind  OperandKind
	Reg   uint32
	Imm   int32
	Label string
}

var labelRe = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// Resolve converts an operand token into a register index, an immediate
// value, or a label reference, in that order of preference.
func Resolve(token string) (op Operand, err error) {
	reg, ok := regMap[token]
	if ok {
		op = Operand{Kind: OPERAND_REGISTER, Reg: reg}
		return
	}

	if len(token) > 1 && token[0] == 'x' && allDigits(token[1:]) {
		n, convErr := strconv.Atoi(token[1:])
		if convErr != nil || n > 31 {
			err = ErrRegisterInvalid(token)
			return
		}
		op = Operand{Kind: OPERAND_REGISTER, Reg: uint32(n)}
		return
	}

	value, convErr := strconv.ParseInt(token, 0, 32)
	if convErr == nil {
		op = Operand{Kind: OPERAND_IMMEDIATE, Imm: int32(value)}
		return
	}

	if labelRe.MatchString(token) {
		op = Operand{Kind: OPERAND_LABEL, Label: token}
		return
	}

	err = ErrOperandInvalid(token)
	return
}

func allDigits(str string) bool {
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(str) > 0
}
