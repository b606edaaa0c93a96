package riscv

// Fields are the operand fields of one instruction word.
type Fields struct {
	Rd  uint32
	Rs1 uint32
	Rs2 uint32
	Imm int32
}

// Inst is an immutable RV32I instruction definition.
type Inst struct {
	Format Format
	Opcode uint32 // 7 bits
	Funct3 uint32 // 3 bits
	Funct7 uint32 // 7 bits
	Mem    bool   // operands use offset(base) syntax
	Shift  bool   // shift immediate; funct7 shares the immediate field
}

// NewInst validates and constructs an instruction definition.
func NewInst(format Format, opcode, funct3, funct7 uint32) (inst Inst, err error) {
	if !format.Valid() {
		err = ErrFormatInvalid
		return
	}
	if opcode > 0x7f {
		err = ErrFieldRange{Value: opcode, Width: 7}
		return
	}
	if funct3 > 0x7 {
		err = ErrFieldRange{Value: funct3, Width: 3}
		return
	}
	if funct7 > 0x7f {
		err = ErrFieldRange{Value: funct7, Width: 7}
		return
	}

	inst = Inst{Format: format, Opcode: opcode, Funct3: funct3, Funct7: funct7}
	return
}

func mustInst(format Format, opcode, funct3, funct7 uint32) Inst {
	inst, err := NewInst(format, opcode, funct3, funct7)
	if err != nil {
		panic(err)
	}
	return inst
}

func memInst(format Format, opcode, funct3 uint32) Inst {
	inst := mustInst(format, opcode, funct3, 0)
	inst.Mem = true
	return inst
}

func shiftInst(opcode, funct3, funct7 uint32) Inst {
	inst := mustInst(FORMAT_I, opcode, funct3, funct7)
	inst.Shift = true
	return inst
}

// instMap is the RV32I base instruction catalog.
var instMap = map[string]Inst{
	"lb":    memInst(FORMAT_I, 0b0000011, 0b000),
	"lh":    memInst(FORMAT_I, 0b0000011, 0b001),
	"lw":    memInst(FORMAT_I, 0b0000011, 0b010),
	"lbu":   memInst(FORMAT_I, 0b0000011, 0b100),
	"lhu":   memInst(FORMAT_I, 0b0000011, 0b101),
	"addi":  mustInst(FORMAT_I, 0b0010011, 0b000, 0),
	"slli":  shiftInst(0b0010011, 0b001, 0b0000000),
	"slti":  mustInst(FORMAT_I, 0b0010011, 0b010, 0),
	"sltiu": mustInst(FORMAT_I, 0b0010011, 0b011, 0),
	"xori":  mustInst(FORMAT_I, 0b0010011, 0b100, 0),
	"srli":  shiftInst(0b0010011, 0b101, 0b0000000),
	"srai":  shiftInst(0b0010011, 0b101, 0b0100000),
	"ori":   mustInst(FORMAT_I, 0b0010011, 0b110, 0),
	"andi":  mustInst(FORMAT_I, 0b0010011, 0b111, 0),
	"auipc": mustInst(FORMAT_U, 0b0010111, 0, 0),
	"sb":    mustInst(FORMAT_S, 0b0100011, 0b000, 0),
	"sh":    mustInst(FORMAT_S, 0b0100011, 0b001, 0),
	"sw":    mustInst(FORMAT_S, 0b0100011, 0b010, 0),
	"add":   mustInst(FORMAT_R, 0b0110011, 0b000, 0b0000000),
	"sub":   mustInst(FORMAT_R, 0b0110011, 0b000, 0b0100000),
	"sll":   mustInst(FORMAT_R, 0b0110011, 0b001, 0b0000000),
	"slt":   mustInst(FORMAT_R, 0b0110011, 0b010, 0b0000000),
	"sltu":  mustInst(FORMAT_R, 0b0110011, 0b011, 0b0000000),
	"xor":   mustInst(FORMAT_R, 0b0110011, 0b100, 0b0000000),
	"srl":   mustInst(FORMAT_R, 0b0110011, 0b101, 0b0000000),
	"sra":   mustInst(FORMAT_R, 0b0110011, 0b101, 0b0100000),
	"or":    mustInst(FORMAT_R, 0b0110011, 0b110, 0b0000000),
	"and":   mustInst(FORMAT_R, 0b0110011, 0b111, 0b0000000),
	"lui":   mustInst(FORMAT_U, 0b0110111, 0, 0),
	"beq":   mustInst(FORMAT_B, 0b1100011, 0b000, 0),
	"bne":   mustInst(FORMAT_B, 0b1100011, 0b001, 0),
	"blt":   mustInst(FORMAT_B, 0b1100011, 0b100, 0),
	"bge":   mustInst(FORMAT_B, 0b1100011, 0b101, 0),
	"bltu":  mustInst(FORMAT_B, 0b1100011, 0b110, 0),
	"bgeu":  mustInst(FORMAT_B, 0b1100011, 0b111, 0),
	"jalr":  mustInst(FORMAT_I, 0b1100111, 0b000, 0),
	"jal":   mustInst(FORMAT_J, 0b1101111, 0, 0),
}

// Lookup finds a base instruction by mnemonic. Lookup is case-sensitive.
func Lookup(mnemonic string) (inst Inst, ok bool) {
	inst, ok = instMap[mnemonic]
	return
}

// operandPattern returns the textual operand roles for this instruction.
func (inst Inst) operandPattern() []operandRole {
	if inst.Mem {
		return memOperands
	}
	return formatOperands[inst.Format]
}

// immRange returns the immediate bounds for this instruction, and whether
// the immediate must be even.
func (inst Inst) immRange() (lo, hi int32, even bool) {
	if inst.Shift {
		return 0, 31, false
	}
	switch inst.Format {
	case FORMAT_I, FORMAT_S:
		return -2048, 2047, false
	case FORMAT_B:
		return -4096, 4094, true
	case FORMAT_U:
		return 0, 0xfffff, false
	case FORMAT_J:
		return -1048576, 1048574, true
	}
	return 0, 0, false
}

// Encode packs the operand fields into an instruction word.
func (inst Inst) Encode(fields Fields) (word Word, err error) {
	layout, ok := formatLayout[inst.Format]
	if !ok {
		err = ErrFormatInvalid
		return
	}

	imm := fields.Imm
	if inst.Format != FORMAT_R {
		lo, hi, even := inst.immRange()
		if imm < lo || imm > hi {
			err = ErrImmediateRange{Value: imm, Min: lo, Max: hi}
			return
		}
		if even && imm&1 != 0 {
			err = ErrTargetMisaligned(imm)
			return
		}
	}

	// Two's complement the immediate into unsigned form. The upper
	// immediate is placed at its word position so the U layout slice
	// recovers it; shift immediates carry funct7 above the shamt.
	uimm := uint32(imm)
	switch {
	case inst.Shift:
		uimm = inst.Funct7<<5 | uimm
	case inst.Format == FORMAT_U:
		uimm <<= 12
	}

	packed := make([]Field, 0, len(layout))
	for _, slice := range layout {
		var src uint32
		switch slice.src {
		case roleOpcode:
			src = inst.Opcode
		case roleFunct3:
			src = inst.Funct3
		case roleFunct7:
			src = inst.Funct7
		case roleRd:
			src = fields.Rd
		case roleRs1:
			src = fields.Rs1
		case roleRs2:
			src = fields.Rs2
		case roleImm:
			src = uimm
		}
		width := slice.top - slice.bottom + 1
		value := (src >> uint(slice.bottom)) & uint32((uint64(1)<<uint(width))-1)
		packed = append(packed, Field{Value: value, Width: width})
	}

	return Pack(packed...)
}

// Decode unpacks the operand fields of a word encoded by this instruction.
func (inst Inst) Decode(word Word) (fields Fields) {
	pos := 32
	var uimm uint32

	for _, slice := range formatLayout[inst.Format] {
		width := slice.top - slice.bottom + 1
		pos -= width
		value := word.Bits(pos+width-1, pos)
		switch slice.src {
		case roleRd:
			fields.Rd = value
		case roleRs1:
			fields.Rs1 = value
		case roleRs2:
			fields.Rs2 = value
		case roleImm:
			uimm |= value << uint(slice.bottom)
		}
	}

	switch {
	case inst.Shift:
		fields.Imm = int32(uimm & 0x1f)
	case inst.Format == FORMAT_U:
		fields.Imm = int32(uimm >> 12)
	case inst.Format == FORMAT_I, inst.Format == FORMAT_S:
		fields.Imm = signExtend(uimm, 12)
	case inst.Format == FORMAT_B:
		fields.Imm = signExtend(uimm, 13)
	case inst.Format == FORMAT_J:
		fields.Imm = signExtend(uimm, 21)
	}

	return
}

func signExtend(value uint32, bits int) int32 {
	shift := uint(32 - bits)
	return int32(value<<shift) >> shift
}

// instKey indexes the catalog by selector fields for decoding.
type instKey struct {
	opcode uint32
	funct3 uint32
	funct7 uint32
}

var decodeMap = map[instKey]string{}
var opcodeFormat = map[uint32]Format{}

func init() {
	for name, inst := range instMap {
		key := instKey{opcode: inst.Opcode}
		switch inst.Format {
		case FORMAT_R:
			key.funct3 = inst.Funct3
			key.funct7 = inst.Funct7
		case FORMAT_I, FORMAT_S, FORMAT_B:
			key.funct3 = inst.Funct3
			if inst.Shift {
				key.funct7 = inst.Funct7
			}
		}
		decodeMap[key] = name
		opcodeFormat[inst.Opcode] = inst.Format
	}
}

// Decode finds the catalog instruction encoded by a word and unpacks its
// operand fields.
func Decode(word Word) (mnemonic string, fields Fields, err error) {
	opcode := word.Bits(6, 0)
	format, ok := opcodeFormat[opcode]
	if !ok {
		err = ErrUnknownWord(word)
		return
	}

	key := instKey{opcode: opcode}
	if format != FORMAT_U && format != FORMAT_J {
		key.funct3 = word.Bits(14, 12)
	}

	switch format {
	case FORMAT_R:
		key.funct7 = word.Bits(31, 25)
		mnemonic, ok = decodeMap[key]
	case FORMAT_I:
		// Shift immediates carry funct7 above the shamt; everything
		// else keeps those bits in the immediate.
		key.funct7 = word.Bits(31, 25)
		mnemonic, ok = decodeMap[key]
		if !ok {
			key.funct7 = 0
			mnemonic, ok = decodeMap[key]
		}
	default:
		mnemonic, ok = decodeMap[key]
	}
	if !ok {
		err = ErrUnknownWord(word)
		return
	}

	fields = instMap[mnemonic].Decode(word)
	return
}
