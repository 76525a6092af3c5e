// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"strconv"
)

// Generator emits Hack assembly for decoded instructions.
//
// A Generator numbers the labels of comparison operations with one counter
// per operation, starting at 0 and incremented on each use. Labels are
// therefore unique for a given Generator. Use a new Generator for each
// translation unit: the label names do not include a namespace, so sharing
// output between Generators may produce duplicate labels.
type Generator struct {
	comments bool
	eq       int
	lt       int
	gt       int
}

// GenOption is a function for setting a Generator's options in NewGenerator.
type GenOption func(*Generator)

// WithComments enables or disables the echo of each instruction's source
// form as a comment before its code. Comments are enabled by default.
func WithComments(on bool) GenOption {
	return func(g *Generator) { g.comments = on }
}

// NewGenerator returns a new Generator with all label counters set to 0.
func NewGenerator(opts ...GenOption) *Generator {
	g := &Generator{comments: true}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Count returns the number of labels already generated for the comparison
// op. It returns 0 for any other operation.
func (g *Generator) Count(op Op) int {
	switch op {
	case OpEq:
		return g.eq
	case OpLt:
		return g.lt
	case OpGt:
		return g.gt
	}
	return 0
}

// *SP = D; SP++
var pushD = [...]string{
	"@SP",
	"A=M",
	"M=D",
	"@SP",
	"M=M+1",
}

// SP--; D = *SP
var popD = [...]string{
	"@SP",
	"M=M-1",
	"A=M",
	"D=M",
}

// Append appends the code for ins to dst and returns the extended slice. All
// the lines of an instruction are appended in a single call. Nothing is
// appended for OpNop.
func (g *Generator) Append(dst []string, ins Instruction) []string {
	if ins.Op == OpNop {
		return dst
	}
	if g.comments {
		dst = append(dst, "// "+ins.String())
	}
	switch ins.Op {
	case OpPush:
		return g.push(dst, ins)
	case OpPop:
		return g.pop(dst, ins)
	case OpAdd:
		return binary(dst, "M=D+M")
	case OpSub:
		return binary(dst, "M=M-D")
	case OpAnd:
		return binary(dst, "M=D&M")
	case OpOr:
		return binary(dst, "M=D|M")
	case OpNeg:
		return unary(dst, "M=-M")
	case OpNot:
		return unary(dst, "M=!M")
	case OpEq:
		dst = compare(dst, "EQ", g.eq, "JEQ")
		g.eq++
	case OpLt:
		dst = compare(dst, "LT", g.lt, "JLT")
		g.lt++
	case OpGt:
		dst = compare(dst, "GT", g.gt, "JGT")
		g.gt++
	default:
		panic("vm: unexpected op " + ins.Op.String())
	}
	return dst
}

// Terminate appends the terminating loop that stops program execution.
func (g *Generator) Terminate(dst []string) []string {
	if g.comments {
		dst = append(dst, "// end")
	}
	return append(dst, "(END)", "@END", "0;JMP")
}

// address returns the A-instruction loading the address of a Direct or
// Symbolic segment cell.
func address(ins Instruction) string {
	switch ins.Segment {
	case Temp:
		return "@" + strconv.Itoa(TempBase+ins.Index)
	case Pointer:
		return "@" + pointers[ins.Index]
	case Static:
		return "@" + ins.Namespace + staticSep + strconv.Itoa(ins.Index)
	}
	panic("vm: no fixed address for segment " + ins.Segment.String())
}

func (g *Generator) push(dst []string, ins Instruction) []string {
	switch ins.Segment.Addressing() {
	case Immediate:
		dst = append(dst, "@"+strconv.Itoa(ins.Index), "D=A")
	case Indirect:
		dst = append(dst,
			"@"+strconv.Itoa(ins.Index),
			"D=A",
			"@"+ins.Segment.Base(),
			"A=D+M",
			"D=M")
	default:
		dst = append(dst, address(ins), "D=M")
	}
	return append(dst, pushD[:]...)
}

func (g *Generator) pop(dst []string, ins Instruction) []string {
	if ins.Segment.Addressing() != Indirect {
		dst = append(dst, popD[:]...)
		return append(dst, address(ins), "M=D")
	}
	// the address computation needs D, save it before popping.
	dst = append(dst,
		"@"+strconv.Itoa(ins.Index),
		"D=A",
		"@"+ins.Segment.Base(),
		"D=D+M",
		"@"+Scratch,
		"M=D")
	dst = append(dst, popD[:]...)
	return append(dst,
		"@"+Scratch,
		"A=M",
		"M=D")
}

// pops y into D, x stays in place and is replaced by x op y.
func binary(dst []string, op string) []string {
	dst = append(dst, popD[:]...)
	return append(dst,
		"@SP",
		"M=M-1",
		"A=M",
		op,
		"@SP",
		"M=M+1")
}

func unary(dst []string, op string) []string {
	return append(dst,
		"@SP",
		"M=M-1",
		"A=M",
		op,
		"@SP",
		"M=M+1")
}

// compare sets x to true (-1), then jumps over the reset to false (0) if
// x - y satisfies jmp.
func compare(dst []string, kind string, n int, jmp string) []string {
	label := kind + strconv.Itoa(n)
	dst = append(dst, popD[:]...)
	return append(dst,
		"@SP",
		"M=M-1",
		"A=M",
		"D=M-D",
		"M=-1",
		"@"+label,
		"D;"+jmp,
		"@SP",
		"A=M",
		"M=0",
		"("+label+")",
		"@SP",
		"M=M+1")
}
