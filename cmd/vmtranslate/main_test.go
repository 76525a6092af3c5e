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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/hackvm/hack"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_usage(t *testing.T) {
	if code, _, e := runCmd(t); code != exitUsage || !strings.Contains(e, "Usage:") {
		t.Errorf("no argument: expected exit %d with usage, got %d %q", exitUsage, code, e)
	}
	if code, _, _ := runCmd(t, "-nosuchflag", "testdata/Add.vm"); code != exitUsage {
		t.Errorf("bad flag: expected exit %d, got %d", exitUsage, code)
	}
	if code, _, _ := runCmd(t, "testdata/Add.vm", "testdata/Add.vm"); code != exitUsage {
		t.Errorf("two arguments: expected exit %d, got %d", exitUsage, code)
	}
	if code, _, e := runCmd(t, "testdata/Add.asm"); code != exitError || !strings.Contains(e, "expected a .vm file") {
		t.Errorf("wrong extension: expected exit %d, got %d %q", exitError, code, e)
	}
	if code, _, _ := runCmd(t, "testdata/Missing.vm"); code != exitError {
		t.Errorf("missing file: expected exit %d, got %d", exitError, code)
	}
}

func TestRun_translate(t *testing.T) {
	code, out, e := runCmd(t, "testdata/Add.vm")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, e)
	}
	if !strings.HasPrefix(out, "// push constant 7\n@7\nD=A\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	_, out, _ = runCmd(t, "-nocomments", "-halt", "testdata/Add.vm")
	if strings.Contains(out, "//") || !strings.HasSuffix(out, "(END)\n@END\n0;JMP\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRun_error(t *testing.T) {
	code, _, e := runCmd(t, "testdata/Bad.vm")
	if code != exitError {
		t.Fatalf("expected exit %d, got %d", exitError, code)
	}
	if !strings.Contains(e, "testdata/Bad.vm:3:1: ") || !strings.Contains(e, `"push local"`) {
		t.Errorf("unexpected error output %q", e)
	}
}

func TestRun_strict(t *testing.T) {
	code, _, e := runCmd(t, "testdata/Label.vm")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, e)
	}
	if !strings.Contains(e, `"opcode":"label"`) {
		t.Errorf("expected warning, got %q", e)
	}
	if code, _, e = runCmd(t, "-strict", "testdata/Label.vm"); code != exitError || !strings.Contains(e, "unknown opcode") {
		t.Errorf("strict: expected exit %d, got %d %q", exitError, code, e)
	}
}

func TestRun_output(t *testing.T) {
	dir := t.TempDir()
	asmFile := filepath.Join(dir, "Add.asm")
	hackFile := filepath.Join(dir, "Add.hack")
	if code, out, e := runCmd(t, "-o", asmFile, "testdata/Add.vm"); code != exitOK || out != "" {
		t.Fatalf("exit %d: %s %s", code, out, e)
	}
	if code, _, e := runCmd(t, "-hack", "-halt", "-o", hackFile, "testdata/Add.vm"); code != exitOK {
		t.Fatalf("exit %d: %s", code, e)
	}
	b, err := os.ReadFile(asmFile)
	if err != nil {
		t.Fatal(err)
	}
	_, out, _ := runCmd(t, "testdata/Add.vm")
	if string(b) != out {
		t.Errorf("file and standard output differ:\n%s\n----\n%s", b, out)
	}

	rom, err := hack.Load(hackFile)
	if err != nil {
		t.Fatal(err)
	}
	i, err := execute(rom, &defaultConfig().Run)
	if err != nil {
		t.Fatal(err)
	}
	if !i.Halted() || i.RAM[256] != 15 {
		t.Errorf("expected halted with 15 on the stack, got %v %v", i.Halted(), i.Stack())
	}
	// errors do not leave partial files behind
	bad := filepath.Join(dir, "Bad.asm")
	if code, _, _ := runCmd(t, "-o", bad, "testdata/Bad.vm"); code != exitError {
		t.Errorf("expected exit %d, got %d", exitError, code)
	}
	if _, err = os.Stat(bad); !os.IsNotExist(err) {
		t.Errorf("%s: expected file not to exist, got %v", bad, err)
	}
}

func TestRun_dump(t *testing.T) {
	code, out, e := runCmd(t, "-nocomments", "-halt", "-dump", "-config", "testdata/basic.yaml", "testdata/Basic.vm")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, e)
	}
	for _, s := range []string{"STACK", "TEMP", "POINTERS", "R11", " 256 ", " 472 "} {
		if !strings.Contains(strings.ToUpper(out), s) {
			t.Errorf("expected %q in output:\n%s", s, out)
		}
	}
	if !strings.Contains(e, `"msg":"run complete"`) || !strings.Contains(e, `"halted":true`) {
		t.Errorf("expected run log, got %q", e)
	}
}

func TestRun_cycles(t *testing.T) {
	code, _, e := runCmd(t, "-run", "-halt", "-cycles", "5", "testdata/Add.vm")
	if code != exitError || !strings.Contains(e, "cycle limit reached") {
		t.Errorf("expected exit %d with cycle limit error, got %d %q", exitError, code, e)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg := defaultConfig()
	if err := loadConfig("testdata/basic.yaml", cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.Comments || cfg.Strict || cfg.Run.Cycles != 5000 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Run.RAM["SP"] != 256 || cfg.Run.RAM["LCL"] != 300 || cfg.Run.RAM["3000"] != 0 {
		t.Errorf("unexpected RAM settings %v", cfg.Run.RAM)
	}
	if err := loadConfig("testdata/unknown.yaml", defaultConfig()); err == nil {
		t.Error("unknown field: expected error")
	}
}

func TestPokes(t *testing.T) {
	rc := runConfig{RAM: map[string]int{"LCL": 300, "R7": -1, "3000": 42}}
	opts, err := rc.pokes()
	if err != nil {
		t.Fatal(err)
	}
	i, err := hack.New(nil, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if i.RAM[1] != 300 || i.RAM[7] != -1 || i.RAM[3000] != 42 {
		t.Errorf("unexpected RAM contents %v %v %v", i.RAM[1], i.RAM[7], i.RAM[3000])
	}
	for _, ram := range []map[string]int{{"foo": 1}, {"40000": 1}, {"SP": 70000}} {
		rc.RAM = ram
		if _, err = rc.pokes(); err == nil {
			t.Errorf("%v: expected error", ram)
		}
	}
}
