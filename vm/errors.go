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

import (
	"text/scanner"

	"github.com/pkg/errors"
)

// Decode errors. Errors returned by Decode and Translate wrap one of these and
// can be tested with errors.Is.
var (
	ErrWrongArity       = errors.New("wrong number of operands")
	ErrInvalidOperand   = errors.New("invalid operand")
	ErrUnknownSegment   = errors.New("unknown segment")
	ErrInvalidSegment   = errors.New("invalid segment for pop")
	ErrMissingNamespace = errors.New("static segment without namespace")
	ErrUnknownOpcode    = errors.New("unknown opcode")
)

// Error is a translation error at a given source line.
type Error struct {
	Pos  scanner.Position
	Text string // the offending source line
	Err  error
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Err.Error() + ": \"" + e.Text + "\""
}

// Unwrap returns the underlying decode error.
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the underlying decode error.
func (e *Error) Cause() error { return e.Err }
