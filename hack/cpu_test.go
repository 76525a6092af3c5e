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

package hack_test

import (
	"fmt"
	"strings"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/hack"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

func load(src string, opts ...hack.Option) *hack.Instance {
	rom, err := asm.Assemble("test", strings.NewReader(src))
	Expect(err).NotTo(HaveOccurred())
	i, err := hack.New(rom, opts...)
	Expect(err).NotTo(HaveOccurred())
	return i
}

func run(src string, opts ...hack.Option) *hack.Instance {
	i := load(src, opts...)
	Expect(i.Run()).To(Succeed())
	return i
}

var _ = Describe("Instance", func() {
	It("should load A-instructions into A", func() {
		i := run("@1234")
		Expect(i.A).To(Equal(hack.Cell(1234)))
		Expect(i.PC).To(Equal(1))
		Expect(i.Cycles()).To(Equal(int64(1)))
	})

	It("should write M using the address in A before the update", func() {
		i := run("@10\nAM=A+1")
		Expect(i.RAM[10]).To(Equal(hack.Cell(11)))
		Expect(i.A).To(Equal(hack.Cell(11)))
	})

	It("should store into all destinations at once", func() {
		i := run("@20\nAMD=A-1")
		Expect(i.RAM[20]).To(Equal(hack.Cell(19)))
		Expect(i.A).To(Equal(hack.Cell(19)))
		Expect(i.D).To(Equal(hack.Cell(19)))
	})

	It("should reject programs larger than the ROM", func() {
		_, err := hack.New(make([]hack.Cell, hack.ROMSize+1))
		Expect(err).To(HaveOccurred())
	})

	It("should reject out of range pokes", func() {
		_, err := hack.New(nil, hack.Poke(hack.RAMSize, 1))
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("ALU computations with D=5, A=3, M=7",
		func(comp string, want int) {
			i := run("@5\nD=A\n@3\nD="+comp, hack.Poke(3, 7))
			Expect(i.D).To(Equal(hack.Cell(want)))
		},
		Entry(nil, "0", 0),
		Entry(nil, "1", 1),
		Entry(nil, "-1", -1),
		Entry(nil, "D", 5),
		Entry(nil, "A", 3),
		Entry(nil, "!D", -6),
		Entry(nil, "!A", -4),
		Entry(nil, "-D", -5),
		Entry(nil, "-A", -3),
		Entry(nil, "D+1", 6),
		Entry(nil, "A+1", 4),
		Entry(nil, "D-1", 4),
		Entry(nil, "A-1", 2),
		Entry(nil, "D+A", 8),
		Entry(nil, "D-A", 2),
		Entry(nil, "A-D", -2),
		Entry(nil, "D&A", 1),
		Entry(nil, "D|A", 7),
		Entry(nil, "M", 7),
		Entry(nil, "!M", -8),
		Entry(nil, "-M", -7),
		Entry(nil, "M+1", 8),
		Entry(nil, "M-1", 6),
		Entry(nil, "D+M", 12),
		Entry(nil, "D-M", -2),
		Entry(nil, "M-D", 2),
		Entry(nil, "D&M", 5),
		Entry(nil, "D|M", 7),
	)

	DescribeTable("jumps",
		func(jmp string, v int, taken bool) {
			load := "D=A"
			if v < 0 {
				load = "D=-A"
				v = -v
			}
			src := fmt.Sprintf(`
				@R1
				M=0
				@%d
				%s
				@TAKEN
				D;%s
				@END
				0;JMP
			(TAKEN)
				@R1
				M=1
			(END)
				@END
				0;JMP`, v, load, jmp)
			i := run(src)
			Expect(i.Halted()).To(BeTrue())
			Expect(i.RAM[1] == 1).To(Equal(taken))
		},
		Entry(nil, "JGT", 1, true),
		Entry(nil, "JGT", 0, false),
		Entry(nil, "JGT", -1, false),
		Entry(nil, "JEQ", 0, true),
		Entry(nil, "JEQ", 1, false),
		Entry(nil, "JGE", 0, true),
		Entry(nil, "JGE", -1, false),
		Entry(nil, "JLT", -1, true),
		Entry(nil, "JLT", 0, false),
		Entry(nil, "JNE", 1, true),
		Entry(nil, "JNE", 0, false),
		Entry(nil, "JLE", 0, true),
		Entry(nil, "JLE", 1, false),
		Entry(nil, "JMP", -1, true),
	)

	Describe("Run", func() {
		It("should stop on the terminating loop", func() {
			i := run("@42\nD=A\n(END)\n@END\n0;JMP")
			Expect(i.Halted()).To(BeTrue())
			Expect(i.D).To(Equal(hack.Cell(42)))
			Expect(i.PC).To(Equal(3))
			Expect(i.Cycles()).To(Equal(int64(4)))
		})

		It("should enforce the cycle limit", func() {
			i := load("(LOOP)\nD=D+1\n@LOOP\n0;JMP", hack.MaxCycles(100))
			err := i.Run()
			Expect(errors.Is(err, hack.ErrCycleLimit)).To(BeTrue())
			Expect(i.Cycles()).To(Equal(int64(100)))
		})

		It("should report out of range memory accesses", func() {
			i := load("@32767\nA=A+1\nM=1")
			err := i.Run()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Recovered error @pc=2/3"))
		})

		It("should restart after Reset", func() {
			i := run("@SP\nM=M+1")
			Expect(i.RAM[hack.SP]).To(Equal(hack.Cell(1)))
			i.Reset()
			Expect(i.Run()).To(Succeed())
			Expect(i.RAM[hack.SP]).To(Equal(hack.Cell(2)))
		})
	})

	Describe("Step", func() {
		It("should execute one instruction at a time", func() {
			i := load("@7\nD=A\n@8")
			Expect(i.Step()).To(Succeed())
			Expect(i.A).To(Equal(hack.Cell(7)))
			Expect(i.D).To(Equal(hack.Cell(0)))
			Expect(i.Step()).To(Succeed())
			Expect(i.D).To(Equal(hack.Cell(7)))
			Expect(i.Step()).To(Succeed())
			Expect(i.Step()).To(Succeed())
			Expect(i.PC).To(Equal(3))
			Expect(i.Cycles()).To(Equal(int64(3)))
		})
	})

	Describe("Stack", func() {
		It("should return the cells below SP", func() {
			i, err := hack.New(nil,
				hack.Poke(hack.StackBase, 1),
				hack.Poke(hack.StackBase+1, 2),
				hack.Poke(int(hack.SP), hack.StackBase+2))
			Expect(err).NotTo(HaveOccurred())
			Expect(i.Stack()).To(Equal([]hack.Cell{1, 2}))
		})

		It("should be empty when SP is at the base", func() {
			i, _ := hack.New(nil, hack.Poke(int(hack.SP), hack.StackBase))
			Expect(i.Stack()).To(BeEmpty())
		})
	})
})
