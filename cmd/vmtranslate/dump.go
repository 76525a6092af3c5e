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

package main

import (
	"io"
	"strconv"

	"github.com/db47h/hackvm/hack"
	"github.com/db47h/hackvm/internal/hvi"
	"github.com/db47h/hackvm/vm"
	"github.com/jedib0t/go-pretty/v6/table"
)

var pointerNames = [...]string{"SP", "LCL", "ARG", "THIS", "THAT"}

// dumpState writes the registers, segment pointers, temp block and stack of
// i to w as tables.
func dumpState(i *hack.Instance, w io.Writer) error {
	ew := hvi.NewErrWriter(w)

	t := table.NewWriter()
	t.SetTitle("CPU")
	t.AppendHeader(table.Row{"PC", "A", "D", "Cycles", "Halted"})
	t.AppendRow(table.Row{i.PC, i.A, i.D, i.Cycles(), i.Halted()})
	render(ew, t)

	t = table.NewWriter()
	t.SetTitle("Pointers")
	var hdr, row table.Row
	for n, name := range pointerNames {
		hdr = append(hdr, name)
		row = append(row, i.RAM[n])
	}
	t.AppendHeader(hdr)
	t.AppendRow(row)
	render(ew, t)

	t = table.NewWriter()
	t.SetTitle("Temp")
	hdr, row = nil, nil
	for n := 0; n < vm.TempSize; n++ {
		hdr = append(hdr, "R"+strconv.Itoa(vm.TempBase+n))
		row = append(row, i.RAM[vm.TempBase+n])
	}
	t.AppendHeader(hdr)
	t.AppendRow(row)
	render(ew, t)

	st := i.Stack()
	if len(st) == 0 {
		return ew.WriteLines([]string{"Stack: empty"})
	}
	t = table.NewWriter()
	t.SetTitle("Stack")
	t.AppendHeader(table.Row{"Address", "Value"})
	for n, v := range st {
		t.AppendRow(table.Row{hack.StackBase + n, v})
	}
	render(ew, t)
	return ew.Err
}

func render(w *hvi.ErrWriter, t table.Writer) {
	w.WriteLines([]string{t.Render(), ""})
}
