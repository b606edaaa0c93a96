package riscv

// Format is a RISC-V instruction format tag.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(1) // R
	FORMAT_I = Format(2) // I
	FORMAT_S = Format(3) // S
	FORMAT_B = Format(4) // B
	FORMAT_U = Format(5) // U
	FORMAT_J = Format(6) // J
)

// Valid returns true if the format is one of the six base formats.
func (format Format) Valid() bool {
	return format >= FORMAT_R && format <= FORMAT_J
}

// relative returns true if the format's immediate is a pc-relative
// byte offset, resolvable from a label.
func (format Format) relative() bool {
	return format == FORMAT_B || format == FORMAT_J
}

// role identifies the instruction field a bit slice draws from.
type role int

const (
	roleOpcode role = iota
	roleFunct3
	roleFunct7
	roleRd
	roleRs1
	roleRs2
	roleImm
)

// fieldSlice selects bits top..bottom (inclusive) of a source field.
type fieldSlice struct {
	src    role
	top    int
	bottom int
}

// formatLayout is the bit layout of each format, most significant
// slice first. Each layout totals 32 bits.
var formatLayout = map[Format][]fieldSlice{
	FORMAT_R: {
		{roleFunct7, 6, 0},
		{roleRs2, 4, 0},
		{roleRs1, 4, 0},
		{roleFunct3, 2, 0},
		{roleRd, 4, 0},
		{roleOpcode, 6, 0},
	},
	FORMAT_I: {
		{roleImm, 11, 0},
		{roleRs1, 4, 0},
		{roleFunct3, 2, 0},
		{roleRd, 4, 0},
		{roleOpcode, 6, 0},
	},
	FORMAT_S: {
		{roleImm, 11, 5},
		{roleRs2, 4, 0},
		{roleRs1, 4, 0},
		{roleFunct3, 2, 0},
		{roleImm, 4, 0},
		{roleOpcode, 6, 0},
	},
	FORMAT_B: {
		{roleImm, 12, 12},
		{roleImm, 10, 5},
		{roleRs2, 4, 0},
		{roleRs1, 4, 0},
		{roleFunct3, 2, 0},
		{roleImm, 4, 1},
		{roleImm, 11, 11},
		{roleOpcode, 6, 0},
	},
	FORMAT_U: {
		{roleImm, 31, 12},
		{roleRd, 4, 0},
		{roleOpcode, 6, 0},
	},
	FORMAT_J: {
		{roleImm, 20, 20},
		{roleImm, 10, 1},
		{roleImm, 11, 11},
		{roleImm, 19, 12},
		{roleRd, 4, 0},
		{roleOpcode, 6, 0},
	},
}

// operandRole is the meaning of a textual operand position.
type operandRole int

const (
	operandRd operandRole = iota
	operandRs1
	operandRs2
	operandImm
)

// formatOperands maps each format to the roles of its textual
// operands, in the order assembly syntax supplies them.
var formatOperands = map[Format][]operandRole{
	FORMAT_R: {operandRd, operandRs1, operandRs2},
	FORMAT_I: {operandRd, operandRs1, operandImm},
	FORMAT_S: {operandRs2, operandImm, operandRs1},
	FORMAT_B: {operandRs1, operandRs2, operandImm},
	FORMAT_U: {operandRd, operandImm},
	FORMAT_J: {operandRd, operandImm},
}

// memOperands is the offset(base) operand order used by loads.
var memOperands = []operandRole{operandRd, operandImm, operandRs1}
