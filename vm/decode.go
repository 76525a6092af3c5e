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

	"github.com/pkg/errors"
)

// Decoder turns token lists into Instructions.
type Decoder struct {
	// Namespace qualifies static segment accesses. It is usually the base name
	// of the source file, see the Namespace function. Decoding a static
	// access with an empty Namespace is an error.
	Namespace string
	// Strict makes unknown opcodes an error instead of a no-op.
	Strict bool
}

// Decode returns the Instruction for the given tokens, as returned by Fields.
// An empty token list decodes to a no-op. So does an unknown opcode, unless
// d.Strict is set.
func (d *Decoder) Decode(tokens []string) (Instruction, error) {
	if len(tokens) == 0 {
		return Instruction{Op: OpNop}, nil
	}
	op, ok := opIndex[tokens[0]]
	if !ok {
		if d.Strict {
			return Instruction{}, errors.Wrapf(ErrUnknownOpcode, "%q", tokens[0])
		}
		return Instruction{Op: OpNop}, nil
	}
	if op != OpPush && op != OpPop {
		if len(tokens) != 1 {
			return Instruction{}, errors.Wrapf(ErrWrongArity, "%s expects no operands, got %d", op, len(tokens)-1)
		}
		return Instruction{Op: op}, nil
	}
	if len(tokens) != 3 {
		return Instruction{}, errors.Wrapf(ErrWrongArity, "%s expects 2 operands, got %d", op, len(tokens)-1)
	}
	seg, ok := segIndex[tokens[1]]
	if !ok {
		return Instruction{}, errors.Wrapf(ErrUnknownSegment, "%q", tokens[1])
	}
	idx, err := strconv.ParseUint(tokens[2], 10, 16)
	if err != nil {
		return Instruction{}, errors.Wrapf(ErrInvalidOperand, "%q", tokens[2])
	}
	ins := Instruction{Op: op, Segment: seg, Index: int(idx)}
	switch seg {
	case Constant:
		if op == OpPop {
			return Instruction{}, errors.Wrapf(ErrInvalidSegment, "%s", seg)
		}
		if ins.Index > MaxConst {
			return Instruction{}, errors.Wrapf(ErrInvalidOperand, "constant %d out of range [0, %d]", ins.Index, MaxConst)
		}
	case Temp:
		if ins.Index >= TempSize {
			return Instruction{}, errors.Wrapf(ErrInvalidOperand, "temp index %d out of range [0, %d]", ins.Index, TempSize-1)
		}
	case Pointer:
		if ins.Index >= ptrCount {
			return Instruction{}, errors.Wrapf(ErrInvalidOperand, "pointer index %d out of range [0, %d]", ins.Index, ptrCount-1)
		}
	case Static:
		if d.Namespace == "" {
			return Instruction{}, ErrMissingNamespace
		}
		ins.Namespace = d.Namespace
	default:
		if ins.Index > MaxConst {
			return Instruction{}, errors.Wrapf(ErrInvalidOperand, "%s index %d out of range [0, %d]", seg, ins.Index, MaxConst)
		}
	}
	return ins, nil
}
