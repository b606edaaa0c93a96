package riscv

import (
	"regexp"
	"strconv"
	"strings"
)

// pseudoMap maps pseudo-instruction mnemonics to expansion templates.
// {n} placeholders substitute the n'th operand of the pseudo form.
// li stays a single addi, so its immediate is limited to the I-type
// range; large constants need an explicit lui/addi pair.
var pseudoMap = map[string][]string{
	"nop":  {"addi x0, x0, 0"},
	"li":   {"addi {0}, x0, {1}"},
	"mv":   {"addi {0}, {1}, 0"},
	"not":  {"xori {0}, {1}, -1"},
	"neg":  {"sub {0}, x0, {1}"},
	"seqz": {"sltiu {0}, {1}, 1"},
	"snez": {"sltu {0}, x0, {1}"},
	"sltz": {"slt {0}, {1}, x0"},
	"sgtz": {"slt {0}, x0, {1}"},
	"beqz": {"beq {0}, x0, {1}"},
	"bnez": {"bne {0}, x0, {1}"},
	"blez": {"bge x0, {0}, {1}"},
	"bgez": {"bge {0}, x0, {1}"},
	"bltz": {"blt {0}, x0, {1}"},
	"bgtz": {"blt x0, {0}, {1}"},
	"ble":  {"bge {1}, {0}, {2}"},
	"bgt":  {"blt {1}, {0}, {2}"},
	"bleu": {"bgeu {1}, {0}, {2}"},
	"bgtu": {"bltu {1}, {0}, {2}"},
	"j":    {"jal x0, {0}"},
	"jal":  {"jal ra, {0}"},
	"jr":   {"jalr x0, {0}, 0"},
	"jalr": {"jalr ra, {0}, 0"},
	"ret":  {"jalr x0, ra, 0"},
}

var placeholderRe = regexp.MustCompile(`\{(\d+)\}`)

// pseudoArity returns the operand count a template set expects.
func pseudoArity(templates []string) (arity int) {
	for _, template := range templates {
		for _, match := range placeholderRe.FindAllStringSubmatch(template, -1) {
			n, _ := strconv.Atoi(match[1])
			if n+1 > arity {
				arity = n + 1
			}
		}
	}
	return
}

// expandPseudo substitutes operands into a pseudo-instruction's templates,
// yielding one line of real assembly text per emitted instruction.
func expandPseudo(mnemonic string, operands []string) (lines []string, err error) {
	templates, ok := pseudoMap[mnemonic]
	if !ok {
		err = ErrUnknownInstruction(mnemonic)
		return
	}

	arity := pseudoArity(templates)
	if len(operands) != arity {
		err = ErrOperandCount{Mnemonic: mnemonic, Want: arity, Got: len(operands)}
		return
	}

	for _, template := range templates {
		line := placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
			n, _ := strconv.Atoi(match[1 : len(match)-1])
			return operands[n]
		})
		lines = append(lines, strings.TrimSpace(line))
	}

	return
}
