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

// Package asm provides utility functions to assemble and disassemble Hack
// machine code.
//
// Source format:
//
// One instruction per line. White space is not significant, even inside an
// instruction ("D = M + 1" is the same as "D=M+1"). Comments start with "//"
// and run to the end of the line.
//
//	@value		A-instruction, value is a decimal constant in [0, 32767]
//	@symbol		A-instruction, symbol is predefined, a label or a variable
//	dest=comp;jump	C-instruction, either of "dest=" or ";jump" may be omitted
//	(LABEL)		binds LABEL to the address of the next instruction
//
// Symbols are made of letters, digits, '_', '.', '$' and ':' and may not start
// with a digit. Predefined symbols:
//
//	symbol		address
//	------		-------
//	SP		0
//	LCL		1
//	ARG		2
//	THIS		3
//	THAT		4
//	R0-R15		0-15
//	SCREEN		16384
//	KBD		24576
//
// Symbols that are neither predefined nor labels are variables. Variables are
// allocated in order of first use, starting at address 16.
//
// Computations:
//
//	a=0	a=1
//	---	---
//	0
//	1
//	-1
//	D
//	A	M
//	!D
//	!A	!M
//	-D
//	-A	-M
//	D+1
//	A+1	M+1
//	D-1
//	A-1	M-1
//	D+A	D+M
//	D-A	D-M
//	A-D	M-D
//	D&A	D&M
//	D|A	D|M
//
// The commutative forms A+D, M+D, A&D, M&D, A|D, M|D, 1+D, 1+A and 1+M are
// accepted as well.
//
// Destinations are any combination of the letters A, D and M, each appearing
// at most once. Jumps are JGT, JEQ, JGE, JLT, JNE, JLE and JMP.
package asm
