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

// Package vm translates programs for the stack based VM to Hack assembly.
//
// Supported instructions:
//
//	instruction		stack	description
//	-----------		-----	----------------------------------------
//	push segment i		-x	push the value of segment[i]
//	pop segment i		x-	pop into segment[i]
//	add			xy-z	x + y
//	sub			xy-z	x - y
//	neg			x-z	-x
//	and			xy-z	x & y (bitwise)
//	or			xy-z	x | y (bitwise)
//	not			x-z	^x (bitwise)
//	eq			xy-b	true if x == y
//	lt			xy-b	true if x < y
//	gt			xy-b	true if x > y
//
// True is -1 (all bits set), false is 0.
//
// Segments:
//
//	segment		addressing	target address
//	-------		----------	--------------
//	constant	immediate	none: push constant i pushes i, in [0, 32767]
//	local		indirect	RAM[LCL] + i
//	argument	indirect	RAM[ARG] + i
//	this		indirect	RAM[THIS] + i
//	that		indirect	RAM[THAT] + i
//	temp		direct		5 + i, i in [0, 7]
//	pointer		direct		THIS (i=0) or THAT (i=1)
//	static		symbolic	variable <namespace>.i
//
// The stack pointer lives in RAM[SP] and points to the first free cell. Pops
// from indirect segments use R13 as scratch.
//
// Lines are tokenized on white space, "//" starts a comment. Blank lines and
// unknown opcodes are skipped, see Decoder for the details and Strict to turn
// unknown opcodes into errors.
//
// Comparisons jump on the sign of x - y, which overflows for operands of
// opposite signs whose difference exceeds the 16 bits range.
package vm
