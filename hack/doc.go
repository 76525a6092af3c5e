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

// Package hack implements a simulator for the Hack CPU.
//
// The Hack machine has two 16 bits registers, A and D, a read-only
// instruction memory (ROM) and a 32K words data memory (RAM). Instructions
// come in two flavors:
//
//	0vvv vvvv vvvv vvvv	A-instruction: load the 15 bits value v into A.
//	111a cccc ccdd djjj	C-instruction: compute, store, jump.
//
// For C-instructions, the comp bits select the ALU operation applied to D
// and either A (a=0) or RAM[A] (a=1). The result is stored in any of A, D and
// RAM[A] according to the three dest bits, and the program jumps to the
// address held in A if the jump bits match the sign of the result.
//
// The simulator is meant to run short translated programs to completion and
// inspect memory afterwards. A program is considered complete when the PC
// leaves the ROM or when it enters the canonical terminating loop:
//
//	(END)
//	@END
//	0;JMP
//
// The screen and keyboard memory maps are plain RAM cells: no I/O is
// performed.
package hack
