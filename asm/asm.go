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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/hackvm/hack"
	"github.com/db47h/hackvm/internal/hvi"
)

// comp field values, including the a bit (bit 6).
var comps = [...]struct {
	name string
	code uint16
}{
	{"0", 0x2A},
	{"1", 0x3F},
	{"-1", 0x3A},
	{"D", 0x0C},
	{"A", 0x30},
	{"!D", 0x0D},
	{"!A", 0x31},
	{"-D", 0x0F},
	{"-A", 0x33},
	{"D+1", 0x1F},
	{"A+1", 0x37},
	{"D-1", 0x0E},
	{"A-1", 0x32},
	{"D+A", 0x02},
	{"D-A", 0x13},
	{"A-D", 0x07},
	{"D&A", 0x00},
	{"D|A", 0x15},
	{"M", 0x70},
	{"!M", 0x71},
	{"-M", 0x73},
	{"M+1", 0x77},
	{"M-1", 0x72},
	{"D+M", 0x42},
	{"D-M", 0x53},
	{"M-D", 0x47},
	{"D&M", 0x40},
	{"D|M", 0x55},
}

// commutative spellings accepted by the assembler.
var compAliases = map[string]string{
	"A+D": "D+A",
	"M+D": "D+M",
	"A&D": "D&A",
	"M&D": "D&M",
	"A|D": "D|A",
	"M|D": "D|M",
	"1+D": "D+1",
	"1+A": "A+1",
	"1+M": "M+1",
}

var dests = [...]string{"", "M", "D", "MD", "A", "AM", "AD", "AMD"}

var jumps = [...]string{"", "JGT", "JEQ", "JGE", "JLT", "JNE", "JLE", "JMP"}

var (
	compIndex  = make(map[string]uint16)
	compNames  [0x80]string
	jumpIndex  = make(map[string]uint16)
	predefined = map[string]hack.Cell{
		"SP":     hack.SP,
		"LCL":    hack.LCL,
		"ARG":    hack.ARG,
		"THIS":   hack.THIS,
		"THAT":   hack.THAT,
		"SCREEN": hack.Screen,
		"KBD":    hack.Keyboard,
	}
)

func init() {
	for _, c := range comps {
		compIndex[c.name] = c.code
		compNames[c.code] = c.name
	}
	for a, n := range compAliases {
		compIndex[a] = compIndex[n]
	}
	for i, j := range jumps[1:] {
		jumpIndex[j] = uint16(i + 1)
	}
	for r := 0; r < 16; r++ {
		predefined["R"+strconv.Itoa(r)] = hack.Cell(r)
	}
}

// Symbol returns the address bound to the predefined symbol name.
func Symbol(name string) (hack.Cell, bool) {
	v, ok := predefined[name]
	return v, ok
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting program.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) ([]hack.Cell, error) {
	p := newParser(name)
	rom, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return rom, nil
}

// Disassemble returns the assembly form of the instruction c. Unknown comp
// fields disassemble as "???".
func Disassemble(c hack.Cell) string {
	op := uint16(c)
	if op&0x8000 == 0 {
		return "@" + strconv.Itoa(int(op))
	}
	comp := compNames[op>>hack.CompShift&0x7F]
	if comp == "" {
		comp = "???"
	}
	s := comp
	if d := dests[op>>3&7]; d != "" {
		s = d + "=" + s
	}
	if j := jumps[op&hack.JumpMask]; j != "" {
		s += ";" + j
	}
	return s
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// frist cell (rom[0]). It will return any write error.
func DisassembleAll(rom []hack.Cell, base int, w io.Writer) error {
	ew := hvi.NewErrWriter(w)
	for pc, c := range rom {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		io.WriteString(ew, Disassemble(c))
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
