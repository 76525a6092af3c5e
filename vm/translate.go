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
	"bufio"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/scanner"

	"github.com/db47h/hackvm/internal/hvi"
	"github.com/pkg/errors"
)

// LineReader is the source of a translation. It is implemented by
// *bufio.Scanner.
type LineReader interface {
	// Scan advances to the next line and returns false when there are no
	// more lines or an error occurred.
	Scan() bool
	// Text returns the current line.
	Text() string
	// Err returns the first non-EOF error encountered by Scan.
	Err() error
}

// Translator translates VM source files to Hack assembly.
type Translator struct {
	name     string
	dec      Decoder
	comments bool
	halt     bool
	log      *slog.Logger
}

// An Option is a function for setting a Translator's options in New.
type Option func(*Translator) error

// Comments enables or disables source comments in the output. Enabled by
// default.
func Comments(on bool) Option {
	return func(t *Translator) error { t.comments = on; return nil }
}

// Strict makes unknown opcodes an error instead of silently skipping them.
func Strict(on bool) Option {
	return func(t *Translator) error { t.dec.Strict = on; return nil }
}

// Halt appends a terminating loop after the translated code.
func Halt(on bool) Option {
	return func(t *Translator) error { t.halt = on; return nil }
}

// Logger sets the logger used to report skipped lines and, at debug level,
// each translated instruction.
func Logger(l *slog.Logger) Option {
	return func(t *Translator) error {
		if l == nil {
			return errors.New("nil logger")
		}
		t.log = l
		return nil
	}
}

// StaticNamespace overrides the namespace of static variables, which defaults
// to Namespace(name).
func StaticNamespace(ns string) Option {
	return func(t *Translator) error {
		if ns == "" {
			return errors.New("empty static namespace")
		}
		t.dec.Namespace = ns
		return nil
	}
}

// Namespace returns the static namespace for the source file path: its base
// name without extension.
func Namespace(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// New returns a new Translator for the source file name. The name is used in
// error messages and to derive the static namespace.
func New(name string, opts ...Option) (*Translator, error) {
	t := &Translator{
		name:     name,
		comments: true,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	t.dec.Namespace = Namespace(name)
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Translate reads VM instructions from src and writes the translated code to
// w, one instruction at a time. Every call uses fresh label counters.
//
// Decoding errors stop the translation and are returned as *Error. The
// context is checked between lines: code for an instruction is either fully
// written or not at all.
func (t *Translator) Translate(ctx context.Context, src LineReader, w io.Writer) error {
	g := NewGenerator(WithComments(t.comments))
	ew := hvi.NewErrWriter(w)
	pos := scanner.Position{Filename: t.name, Column: 1}
	var lines []string
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "%s: translation interrupted", pos)
		}
		if !src.Scan() {
			break
		}
		pos.Line++
		text := src.Text()
		tokens := Fields(text)
		ins, err := t.dec.Decode(tokens)
		if err != nil {
			return &Error{Pos: pos, Text: text, Err: err}
		}
		if ins.Op == OpNop {
			if len(tokens) > 0 {
				t.log.Warn("unknown opcode skipped", "pos", pos.String(), "opcode", tokens[0])
			}
			continue
		}
		lines = g.Append(lines[:0], ins)
		if err = ew.WriteLines(lines); err != nil {
			return err
		}
		t.log.Debug("translated", "pos", pos.String(), "instruction", ins.String(), "lines", len(lines))
	}
	if err := src.Err(); err != nil {
		return errors.Wrapf(err, "%s: read failed", t.name)
	}
	if t.halt {
		return ew.WriteLines(g.Terminate(lines[:0]))
	}
	return ew.Err
}

// Translate translates the VM source read from r to w. See New for the
// meaning of name and the available options.
func Translate(ctx context.Context, name string, r io.Reader, w io.Writer, opts ...Option) error {
	t, err := New(name, opts...)
	if err != nil {
		return err
	}
	return t.Translate(ctx, bufio.NewScanner(r), w)
}
