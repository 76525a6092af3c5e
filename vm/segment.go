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

import "strconv"

// Segment is a VM memory segment.
type Segment int

// Memory segments.
const (
	Constant Segment = iota
	Local
	Argument
	This
	That
	Temp
	Pointer
	Static
)

// Addressing is the way a segment's cells are addressed in target code.
type Addressing int

const (
	// Immediate: the index is the value.
	Immediate Addressing = iota
	// Indirect: the segment's base cell holds a pointer, the address is the
	// pointer plus the index.
	Indirect
	// Direct: the address is a fixed base plus the index.
	Direct
	// Symbolic: the address is a symbol allocated by the assembler.
	Symbolic
)

// Fixed target addresses.
const (
	TempBase  = 5
	TempSize  = 8
	Scratch   = "R13" // scratch cell for computed pop addresses
	MaxConst  = 32767
	ptrCount  = 2
	staticSep = "."
)

var segNames = [...]string{
	"constant",
	"local",
	"argument",
	"this",
	"that",
	"temp",
	"pointer",
	"static",
}

var segIndex = make(map[string]Segment)

func init() {
	for s, n := range segNames {
		segIndex[n] = Segment(s)
	}
}

// base cells of indirect segments.
var bases = [...]string{
	Local:    "LCL",
	Argument: "ARG",
	This:     "THIS",
	That:     "THAT",
}

var pointers = [ptrCount]string{"THIS", "THAT"}

func (s Segment) String() string {
	if s < 0 || int(s) >= len(segNames) {
		return "segment(" + strconv.Itoa(int(s)) + ")"
	}
	return segNames[s]
}

// Base returns the name of the base cell of an Indirect segment, or the empty
// string for other segments.
func (s Segment) Base() string {
	if s < 0 || int(s) >= len(bases) {
		return ""
	}
	return bases[s]
}

// Addressing returns the addressing mode of the segment.
func (s Segment) Addressing() Addressing {
	switch s {
	case Constant:
		return Immediate
	case Local, Argument, This, That:
		return Indirect
	case Static:
		return Symbolic
	default:
		return Direct
	}
}
