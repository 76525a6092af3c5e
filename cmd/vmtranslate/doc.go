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

// The vmtranslate command translates a VM source file to Hack assembly.
//
// Usage:
//
//	vmtranslate [flags] File.vm
//
//	-config filename
//		  load settings from YAML file filename
//	-cycles int
//		  simulator cycle limit (default from config, 100000)
//	-debug
//		  enable debug logging and diagnostics
//	-dump
//		  dump the simulator state after a run (implies -run)
//	-hack
//		  output Hack machine code instead of assembly
//	-halt
//		  append a terminating loop
//	-nocomments
//		  do not echo VM instructions as comments
//	-o filename
//		  write output to filename instead of standard output
//	-run
//		  run the translated program in the simulator
//	-strict
//		  fail on unknown opcodes
//
// The translated code is written to standard output unless -o is given. With
// -hack, the code is assembled and written in the .hack text format: one
// instruction per line as 16 binary digits.
//
// Static variables are named after the base name of the source file: "push
// static 3" in Foo.vm accesses the assembler variable Foo.3.
//
// Unknown opcodes, like the control flow and function commands, are skipped
// with a warning. Use -strict to make them an error.
//
// -run: assembles the translated code and runs it in a Hack CPU simulator
// until the program counter leaves the ROM or the program enters the
// terminating loop appended by -halt. SP is initialized to 256. With -dump,
// the registers, segment pointers, temp cells and stack are printed after
// the run.
//
// -config: the configuration file holds default settings, overridden by the
// command line flags:
//
//	comments: true
//	strict: false
//	halt: true
//	run:
//	  cycles: 100000
//	  ram:            # initial RAM: symbol or address -> value
//	    SP: 256
//	    LCL: 300
//	    "3000": 42
//
// -debug: logs every translated instruction and prints a full stack trace
// along with error messages.
//
// Log messages go to standard error, as text if it is a terminal, as JSON
// otherwise. The exit status is 2 for usage errors, 1 if the translation
// failed.
package main
