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
	"bufio"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/hackvm/hack"
	"github.com/pkg/errors"
)

const (
	maxErrors = 10
	varBase   = 16
)

// Error is an assembly error at a given position in the source.
type Error struct {
	Pos scanner.Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm wraps the errors reported by Assemble.
type ErrAsm []Error

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Error())
	}
	return b.String()
}

type instruction struct {
	pos  scanner.Position
	text string
}

type parser struct {
	name   string
	code   []instruction
	labels map[string]int
	vars   map[string]int
	next   int
	errs   ErrAsm
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: make(map[string]int),
		vars:   make(map[string]int),
		next:   varBase,
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{pos, msg})
	}
}

func isSymbol(s string) bool {
	if s == "" || unicode.IsDigit(rune(s[0])) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_.$:", r) {
			return false
		}
	}
	return true
}

// clean strips comments and all white space from a source line.
func clean(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.Join(strings.Fields(line), "")
}

// scan is the first pass: it collects instructions and binds labels to ROM
// addresses.
func (p *parser) scan(r io.Reader) error {
	s := bufio.NewScanner(r)
	pos := scanner.Position{Filename: p.name, Column: 1}
	for s.Scan() {
		pos.Line++
		t := clean(s.Text())
		if t == "" {
			continue
		}
		if t[0] != '(' {
			p.code = append(p.code, instruction{pos, t})
			continue
		}
		if t[len(t)-1] != ')' {
			p.error(pos, "Unterminated label definition: "+t)
			continue
		}
		n := t[1 : len(t)-1]
		if !isSymbol(n) {
			p.error(pos, "Invalid label name: "+n)
			continue
		}
		if _, ok := predefined[n]; ok {
			p.error(pos, "Label redefinition: "+n+", predefined symbol")
			continue
		}
		if _, ok := p.labels[n]; ok {
			p.error(pos, "Label redefinition: "+n)
			continue
		}
		p.labels[n] = len(p.code)
	}
	return errors.Wrap(s.Err(), "read failed")
}

func (p *parser) address(in *instruction) (uint16, bool) {
	v := in.text[1:]
	if v == "" {
		p.error(in.pos, "Missing A-instruction value")
		return 0, false
	}
	if unicode.IsDigit(rune(v[0])) {
		n, err := strconv.ParseUint(v, 10, 15)
		if err != nil {
			p.error(in.pos, "Invalid A-instruction value: "+v)
			return 0, false
		}
		return uint16(n), true
	}
	if !isSymbol(v) {
		p.error(in.pos, "Invalid symbol: "+v)
		return 0, false
	}
	if c, ok := predefined[v]; ok {
		return uint16(c), true
	}
	if a, ok := p.labels[v]; ok {
		return uint16(a), true
	}
	a, ok := p.vars[v]
	if !ok {
		if p.next >= hack.Screen {
			p.error(in.pos, "Out of variable space for: "+v)
			return 0, false
		}
		a = p.next
		p.vars[v] = a
		p.next++
	}
	return uint16(a), true
}

func (p *parser) compute(in *instruction) (uint16, bool) {
	t := in.text
	op := uint16(hack.CInst)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		j, ok := jumpIndex[t[i+1:]]
		if !ok {
			p.error(in.pos, "Unknown jump: "+t[i+1:])
			return 0, false
		}
		op |= j
		t = t[:i]
	}
	if i := strings.IndexByte(t, '='); i >= 0 {
		d := t[:i]
		if d == "" {
			p.error(in.pos, "Empty destination in: "+in.text)
			return 0, false
		}
		for _, r := range d {
			var bit uint16
			switch r {
			case 'A':
				bit = hack.DestA
			case 'D':
				bit = hack.DestD
			case 'M':
				bit = hack.DestM
			default:
				p.error(in.pos, "Unknown destination: "+d)
				return 0, false
			}
			if op&bit != 0 {
				p.error(in.pos, "Duplicate destination: "+d)
				return 0, false
			}
			op |= bit
		}
		t = t[i+1:]
	}
	c, ok := compIndex[t]
	if !ok {
		p.error(in.pos, "Unknown computation: "+t)
		return 0, false
	}
	return op | c<<hack.CompShift, true
}

// Parse does the parsing and compiling.
func (p *parser) Parse(r io.Reader) ([]hack.Cell, error) {
	if err := p.scan(r); err != nil {
		return nil, err
	}
	if len(p.code) > hack.ROMSize {
		p.error(scanner.Position{Filename: p.name}, "Program too large: "+strconv.Itoa(len(p.code))+" instructions")
		return nil, p.errs
	}
	rom := make([]hack.Cell, 0, len(p.code))
	for k := range p.code {
		in := &p.code[k]
		var (
			op uint16
			ok bool
		)
		if in.text[0] == '@' {
			op, ok = p.address(in)
		} else {
			op, ok = p.compute(in)
		}
		if ok {
			rom = append(rom, hack.Cell(op))
		}
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return rom, nil
}
