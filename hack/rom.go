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

package hack

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/hackvm/internal/hvi"
	"github.com/pkg/errors"
)

// ReadROM reads a program in the .hack text format: one instruction per line,
// written as 16 binary digits. Blank lines are ignored.
func ReadROM(r io.Reader) ([]Cell, error) {
	var rom []Cell
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}
		if len(t) != 16 {
			return nil, errors.Errorf("line %d: expected 16 binary digits, got %q", line, t)
		}
		v, err := strconv.ParseUint(t, 2, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		rom = append(rom, Cell(v))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if len(rom) > ROMSize {
		return nil, errors.Errorf("program too large: %d instructions", len(rom))
	}
	return rom, nil
}

// WriteROM writes the program in rom to w in the .hack text format.
func WriteROM(w io.Writer, rom []Cell) error {
	ew := hvi.NewErrWriter(w)
	var b [17]byte
	b[16] = '\n'
	for _, c := range rom {
		v := uint16(c)
		for k := 15; k >= 0; k-- {
			b[15-k] = '0' + byte(v>>uint(k)&1)
		}
		ew.Write(b[:])
	}
	return ew.Err
}

// Load loads a program from the .hack file fileName.
func Load(fileName string) ([]Cell, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	rom, err := ReadROM(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return rom, nil
}

// Save saves the program in rom to the .hack file fileName. The file is
// removed if any error occurs.
func Save(fileName string, rom []Cell) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		if e := w.Flush(); err == nil && e != nil {
			err = errors.Wrap(e, "write failed")
		}
		if e := f.Close(); err == nil && e != nil {
			err = errors.Wrap(e, "close failed")
		}
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return WriteROM(w, rom)
}
