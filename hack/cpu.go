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

// Cell is the raw type stored in a memory location or a register.
type Cell int16

// Memory layout.
const (
	RAMSize   = 32768
	ROMSize   = 32768
	Screen    = 16384
	Keyboard  = 24576
	StackBase = 256
)

// Well known RAM locations.
const (
	SP Cell = iota
	LCL
	ARG
	THIS
	THAT
)

// ErrCycleLimit is returned by Run when the instance executed as many cycles
// as allowed by the MaxCycles option without completing.
var ErrCycleLimit = errors.New("cycle limit reached")

// Instance represents a Hack CPU with its memory.
type Instance struct {
	PC        int    // Program Counter
	A         Cell   // Address register
	D         Cell   // Data register
	RAM       []Cell // Data memory
	ROM       []Cell // Instruction memory
	cycles    int64
	maxCycles int64
	halted    bool
}

// An Option is a function for setting an Instance's options in New.
type Option func(*Instance) error

// MaxCycles limits the number of cycles executed by Run. A value <= 0 disables
// the limit.
func MaxCycles(n int64) Option {
	return func(i *Instance) error {
		i.maxCycles = n
		return nil
	}
}

// Poke sets the initial value of the RAM cell at address addr.
func Poke(addr int, v Cell) Option {
	return func(i *Instance) error {
		if addr < 0 || addr >= len(i.RAM) {
			return errors.Errorf("poke: address %d out of range", addr)
		}
		i.RAM[addr] = v
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Instance running the program in rom. The rom slice is
// used as is.
func New(rom []Cell, opts ...Option) (*Instance, error) {
	if len(rom) > ROMSize {
		return nil, errors.Errorf("program too large: %d instructions", len(rom))
	}
	i := &Instance{
		RAM: make([]Cell, RAMSize),
		ROM: rom,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// Cycles returns the number of instructions executed since the last call to
// Reset.
func (i *Instance) Cycles() int64 {
	return i.cycles
}

// Halted returns true if the program has reached a terminating loop.
func (i *Instance) Halted() bool {
	return i.halted
}

// Reset clears the registers and the cycle counter. RAM is left untouched.
func (i *Instance) Reset() {
	i.PC, i.A, i.D = 0, 0, 0
	i.cycles = 0
	i.halted = false
}

// Stack returns the cells between the stack base and the current value of SP.
// It returns nil if SP does not point above the stack base.
func (i *Instance) Stack() []Cell {
	sp := int(i.RAM[SP])
	if sp <= StackBase || sp > len(i.RAM) {
		return nil
	}
	return i.RAM[StackBase:sp]
}
