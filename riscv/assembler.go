// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package riscv

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// statement is one tokenized source line awaiting encoding.
type statement struct {
	lineno   int
	text     string
	mnemonic string
	operands []string
	pseudo   bool
	size     int // real instructions emitted
	addr     uint32
}

// Assembler is a two-pass assembler for the RV32I base instruction set.
//
// Pass 1 tokenizes each line, records label declarations against the
// current program counter, and sizes every statement. Pass 2 expands
// pseudo-instructions and encodes against the completed symbol table,
// so forward label references resolve.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string // Predefines
	Label     map[string]uint32 // Map of labels to byte addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value64, verr := strconv.ParseInt(str, 0, 33)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = st_int64
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// splitOperands splits comma-separated operand text into tokens. An
// offset(base) memory operand becomes two tokens, offset first.
func splitOperands(words []string) (operands []string) {
	joined := strings.Join(words, "")
	if len(joined) == 0 {
		return
	}

	operands = strings.Split(joined, ",")

	last := operands[len(operands)-1]
	open := strings.IndexByte(last, '(')
	if open >= 0 && strings.HasSuffix(last, ")") {
		offset := last[:open]
		base := last[open+1 : len(last)-1]
		operands[len(operands)-1] = offset
		operands = append(operands, base)
	}

	return
}

// parseLine tokenizes a single source line, recording labels and equates.
// A nil statement means the line emits no instructions.
func (asm *Assembler) parseLine(line string, lineno int, pc uint32) (st *statement, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	// Label declarations: leading name: tokens bind to the current pc.
	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !labelRe.MatchString(label) {
			err = ErrOperandInvalid(label)
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = pc
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	mnemonic := words[0]
	operands := splitOperands(words[1:])

	// Substitute equates into operand tokens.
	for n, operand := range operands {
		equate, ok := asm.Equate[operand]
		if ok {
			operands[n] = equate
		}
	}

	st = &statement{
		lineno:   lineno,
		text:     line,
		mnemonic: mnemonic,
		operands: operands,
		size:     1,
	}

	// A mnemonic in both tables is real when the operand count matches
	// the real form; otherwise the pseudo template applies.
	inst, real := instMap[mnemonic]
	if real && len(operands) == len(inst.operandPattern()) {
		return
	}

	templates, ok := pseudoMap[mnemonic]
	if ok {
		st.pseudo = true
		st.size = len(templates)
		return
	}

	if !real {
		err = ErrUnknownInstruction(mnemonic)
		st = nil
	}

	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// Pass 1: tokenize, collect the symbol table, size the program.
	var stmts []statement
	var pc uint32

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, "#", 2)
		line = strings.TrimSpace(text_comment[0])

		var st *statement
		st, err = asm.parseLine(line, lineno, pc)
		if err != nil {
			return
		}
		if st == nil {
			continue
		}

		st.addr = pc
		pc += uint32(4 * st.size)
		stmts = append(stmts, *st)
	}

	// Pass 2: encode against the completed symbol table.
	prog = &Program{}
	for _, st := range stmts {
		var code []Word
		code, err = asm.encodeStatement(&st)
		if err != nil {
			lineno, line = st.lineno, st.text
			return
		}

		op := Op{
			LineNo: st.lineno,
			Addr:   st.addr,
			Words:  append([]string{st.mnemonic}, st.operands...),
			Code:   code,
		}
		prog.Ops = append(prog.Ops, op)
	}

	return
}

// encodeStatement emits the machine words for one statement.
func (asm *Assembler) encodeStatement(st *statement) (code []Word, err error) {
	if !st.pseudo {
		var word Word
		word, err = asm.EncodeOne(st.mnemonic, st.operands, st.addr)
		if err != nil {
			return
		}
		code = []Word{word}
		return
	}

	lines, err := expandPseudo(st.mnemonic, st.operands)
	if err != nil {
		return
	}

	pc := st.addr
	for _, line := range lines {
		words := strings.Fields(line)
		var word Word
		word, err = asm.EncodeOne(words[0], splitOperands(words[1:]), pc)
		if err != nil {
			return
		}
		code = append(code, word)
		pc += 4
	}

	return
}

// EncodeOne encodes a single real instruction at the given pc. Label
// operands resolve through the symbol table built by the most recent
// Parse, as pc-relative byte offsets.
func (asm *Assembler) EncodeOne(mnemonic string, operands []string, pc uint32) (word Word, err error) {
	inst, ok := instMap[mnemonic]
	if !ok {
		err = ErrUnknownInstruction(mnemonic)
		return
	}

	pattern := inst.operandPattern()
	if len(operands) != len(pattern) {
		err = ErrOperandCount{Mnemonic: mnemonic, Want: len(pattern), Got: len(operands)}
		return
	}

	var fields Fields
	for n, token := range operands {
		var op Operand
		op, err = Resolve(token)
		if err != nil {
			return
		}

		if pattern[n] != operandImm {
			if op.Kind != OPERAND_REGISTER {
				err = ErrRegisterInvalid(token)
				return
			}
			switch pattern[n] {
			case operandRd:
				fields.Rd = op.Reg
			case operandRs1:
				fields.Rs1 = op.Reg
			case operandRs2:
				fields.Rs2 = op.Reg
			}
			continue
		}

		switch op.Kind {
		case OPERAND_IMMEDIATE:
			fields.Imm = op.Imm
		case OPERAND_LABEL:
			if !inst.Format.relative() {
				err = ErrOperandInvalid(token)
				return
			}
			addr, ok := asm.Label[op.Label]
			if !ok {
				err = ErrLabelMissing(op.Label)
				return
			}
			fields.Imm = int32(addr) - int32(pc)
		default:
			err = ErrOperandInvalid(token)
			return
		}
	}

	return inst.Encode(fields)
}
