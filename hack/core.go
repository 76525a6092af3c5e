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

package hack

import (
	"github.com/pkg/errors"
)

// C-instruction fields.
const (
	CInst     = 0xE000 // 111 prefix of C-instructions
	AFlag     = 1 << 12
	CompShift = 6
	CompMask  = 0x3F
	DestA     = 1 << 5
	DestD     = 1 << 4
	DestM     = 1 << 3
	JumpLT    = 1 << 2
	JumpEQ    = 1 << 1
	JumpGT    = 1
	JumpMask  = JumpLT | JumpEQ | JumpGT
	AMask     = 0x7FFF // value bits of A-instructions
)

// ALU control bits, from the comp field.
const (
	aluNO = 1 << iota
	aluF
	aluNY
	aluZY
	aluNX
	aluZX
)

// ALU computes the output of the Hack ALU for inputs x and y and the 6 bits
// comp field of a C-instruction.
func ALU(x, y Cell, comp uint16) Cell {
	if comp&aluZX != 0 {
		x = 0
	}
	if comp&aluNX != 0 {
		x = ^x
	}
	if comp&aluZY != 0 {
		y = 0
	}
	if comp&aluNY != 0 {
		y = ^y
	}
	var out Cell
	if comp&aluF != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if comp&aluNO != 0 {
		out = ^out
	}
	return out
}

func jump(j uint16, v Cell) bool {
	switch {
	case v < 0:
		return j&JumpLT != 0
	case v == 0:
		return j&JumpEQ != 0
	default:
		return j&JumpGT != 0
	}
}

func (i *Instance) step() {
	op := uint16(i.ROM[i.PC])
	if op&0x8000 == 0 {
		i.A = Cell(op)
		i.PC++
		i.cycles++
		return
	}
	addr := int(uint16(i.A))
	y := i.A
	if op&AFlag != 0 {
		y = i.RAM[addr]
	}
	out := ALU(i.D, y, op>>CompShift&CompMask)
	if op&DestM != 0 {
		i.RAM[addr] = out
	}
	if op&DestA != 0 {
		i.A = out
	}
	if op&DestD != 0 {
		i.D = out
	}
	i.cycles++
	if j := op & JumpMask; jump(j, out) {
		// @n followed by an unconditional jump to n: terminating loop.
		if j == JumpMask && addr == i.PC-1 && i.ROM[addr] == Cell(addr) {
			i.halted = true
			return
		}
		i.PC = addr
		return
	}
	i.PC++
}

func (i *Instance) recovered(e interface{}) error {
	switch e := e.(type) {
	case error:
		return errors.Wrapf(e, "Recovered error @pc=%d/%d, A=%d, D=%d", i.PC, len(i.ROM), i.A, i.D)
	default:
		panic(e)
	}
}

// Step executes a single instruction. It does nothing if the PC is outside of
// the ROM or if the program has halted.
func (i *Instance) Step() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = i.recovered(e)
		}
	}()
	if i.halted || i.PC < 0 || i.PC >= len(i.ROM) {
		return nil
	}
	i.step()
	return nil
}

// Run executes the program until the PC leaves the ROM, the program enters a
// terminating loop, or the cycle limit is reached. Runtime faults like out of
// range RAM accesses are returned as errors.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = i.recovered(e)
		}
	}()
	for !i.halted && i.PC >= 0 && i.PC < len(i.ROM) {
		if i.maxCycles > 0 && i.cycles >= i.maxCycles {
			return errors.Wrapf(ErrCycleLimit, "@pc=%d", i.PC)
		}
		i.step()
	}
	return nil
}
