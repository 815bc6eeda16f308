// Package asmtext turns the opcode-sequence notation spec.md §8 writes by
// hand (one mnemonic per line, an optional literal operand, and `label:`
// markers for jump targets) into a bytecode.Chunk. It is deliberately not a
// language: no expressions, no precedence, no identifiers beyond opcode
// mnemonics, their literal operands, and label names — the bytecode
// *format* boundary from spec §6, not the surface language the excluded
// lexer/parser/compiler would own.
package asmtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/jazz-lang/JazzScript/internal/bytecode"
)

// mnemonics maps every textual opcode name back to its bytecode.OpCode,
// built once from bytecode's own String() table so the two can never drift.
var mnemonics = func() map[string]bytecode.OpCode {
	m := make(map[string]bytecode.OpCode)
	for op := bytecode.LoadConst; op <= bytecode.IterNext; op++ {
		m[op.String()] = op
	}
	return m
}()

// operandKind classifies how a line's trailing token, if any, is parsed.
type operandKind int

const (
	operandNone operandKind = iota
	operandInt              // LoadInt, ConstructArray, Call
	operandVar              // LoadVar, DeclVar, StoreVar
	operandLabel            // Jump, JumpIf, JumpIfFalse, PushCatch
	operandConst            // LoadConst
)

func kindFor(op bytecode.OpCode) operandKind {
	switch op {
	case bytecode.LoadInt, bytecode.ConstructArray, bytecode.Call:
		return operandInt
	case bytecode.LoadVar, bytecode.DeclVar, bytecode.StoreVar:
		return operandVar
	case bytecode.Jump, bytecode.JumpIf, bytecode.JumpIfFalse, bytecode.PushCatch:
		return operandLabel
	case bytecode.LoadConst:
		return operandConst
	default:
		return operandNone
	}
}

// Assemble reads a textual program and produces an equivalent Chunk. File
// is recorded on every emitted Position so a failing program still reports
// a useful location.
func Assemble(src string, file string) (*bytecode.Chunk, error) {
	chunk := bytecode.NewChunk()
	labels := make(map[string]int)

	type pendingLine struct {
		lineNo int
		text   string
	}
	var lines []pendingLine

	// First pass: strip comments/blank lines, resolve label declarations to
	// the pc of the instruction that follows them.
	scanner := bufio.NewScanner(strings.NewReader(src))
	pc := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := stripComment(scanner.Text())
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.HasSuffix(text, ":") && !strings.Contains(text, " ") {
			labels[strings.TrimSuffix(text, ":")] = pc
			continue
		}
		lines = append(lines, pendingLine{lineNo: lineNo, text: text})
		pc++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Second pass: emit one Instruction per remaining line.
	for _, ln := range lines {
		fields := strings.SplitN(ln.text, " ", 2)
		name := fields[0]
		op, ok := mnemonics[name]
		if !ok {
			return nil, fmt.Errorf("asmtext: line %d: unknown opcode %q", ln.lineNo, name)
		}
		var operand string
		if len(fields) > 1 {
			operand = strings.TrimSpace(fields[1])
		}
		in, err := buildInstruction(op, operand, chunk, labels)
		if err != nil {
			return nil, fmt.Errorf("asmtext: line %d: %w", ln.lineNo, err)
		}
		chunk.Emit(in, bytecode.Position{File: file, Line: ln.lineNo})
	}
	return chunk, nil
}

func buildInstruction(op bytecode.OpCode, operand string, chunk *bytecode.Chunk, labels map[string]int) (bytecode.Instruction, error) {
	switch kindFor(op) {
	case operandNone:
		return bytecode.Op0(op), nil

	case operandInt:
		n, err := strconv.Atoi(operand)
		if err != nil {
			return bytecode.Instruction{}, fmt.Errorf("%s expects an integer operand: %w", op, err)
		}
		return bytecode.Idx(op, n), nil

	case operandVar:
		return bytecode.Named(op, unquote(operand)), nil

	case operandLabel:
		target, ok := labels[operand]
		if !ok {
			return bytecode.Instruction{}, fmt.Errorf("%s references undefined label %q", op, operand)
		}
		return bytecode.Addr(op, target), nil

	case operandConst:
		idx := chunk.AddConstant(parseLiteral(operand))
		return bytecode.Idx(op, idx), nil

	default:
		return bytecode.Instruction{}, fmt.Errorf("%s: unsupported operand kind", op)
	}
}

// parseLiteral interprets a LoadConst operand as a Number, Bool, or String;
// the assembler never emits a Nil or Undefined constant.
func parseLiteral(tok string) interface{} {
	switch tok {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}
	return unquote(tok)
}

func unquote(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		if s, err := strconv.Unquote(tok); err == nil {
			return s
		}
	}
	return tok
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
