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

// Op is the operation of an Instruction.
type Op int

// Operations of the VM instruction set.
const (
	OpNop Op = iota
	OpAdd
	OpSub
	OpNeg
	OpAnd
	OpOr
	OpNot
	OpEq
	OpLt
	OpGt
	OpPush
	OpPop
)

var opNames = [...]string{
	"",
	"add",
	"sub",
	"neg",
	"and",
	"or",
	"not",
	"eq",
	"lt",
	"gt",
	"push",
	"pop",
}

var opIndex = make(map[string]Op)

func init() {
	for op, n := range opNames[1:] {
		opIndex[n] = Op(op + 1)
	}
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opNames[op]
}

// Binary returns true for operations that combine the two values on top of the
// stack into one.
func (op Op) Binary() bool {
	switch op {
	case OpAdd, OpSub, OpAnd, OpOr:
		return true
	}
	return false
}

// Unary returns true for operations that replace the value on top of the
// stack.
func (op Op) Unary() bool {
	return op == OpNeg || op == OpNot
}

// Comparison returns true for eq, lt and gt.
func (op Op) Comparison() bool {
	return op == OpEq || op == OpLt || op == OpGt
}

// Instruction is a decoded VM instruction. Segment and Index are only
// meaningful for push and pop. Namespace is only set for the static segment.
//
// Instructions are values: once decoded they do not refer back to the source
// line.
type Instruction struct {
	Op        Op
	Segment   Segment
	Index     int
	Namespace string
}

// String returns the canonical source form of the instruction. The empty
// string is returned for OpNop.
func (ins Instruction) String() string {
	switch ins.Op {
	case OpPush, OpPop:
		return ins.Op.String() + " " + ins.Segment.String() + " " + strconv.Itoa(ins.Index)
	default:
		return ins.Op.String()
	}
}

// StackEffect returns the net change of the stack pointer after executing
// the instruction.
func (ins Instruction) StackEffect() int {
	switch {
	case ins.Op == OpPush:
		return 1
	case ins.Op == OpPop, ins.Op.Binary(), ins.Op.Comparison():
		return -1
	default:
		return 0
	}
}
