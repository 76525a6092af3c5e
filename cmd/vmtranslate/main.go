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
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/hack"
	"github.com/db47h/hackvm/vm"
	"github.com/pkg/errors"
	"github.com/tebeka/atexit"
)

// exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	outFileName string
	hack        bool
	run         bool
	dump        bool
	debug       bool
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	ho := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		ho.Level = slog.LevelDebug
	}
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		return slog.New(slog.NewTextHandler(w, ho))
	}
	return slog.New(slog.NewJSONHandler(w, ho))
}

func report(w io.Writer, err error, debug bool) int {
	if err == nil {
		return exitOK
	}
	if debug {
		fmt.Fprintf(w, "%+v\n", err)
	} else {
		fmt.Fprintf(w, "%v\n", err)
	}
	return exitError
}

// writeFile creates fileName and writes to it with fn. The file is removed if
// any error occurs.
func writeFile(fileName string, fn func(w io.Writer) error) (err error) {
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
		if err != nil {
			os.Remove(fileName)
		}
	}()
	return fn(w)
}

func translate(ctx context.Context, fileName string, cfg *config, log *slog.Logger) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	var b bytes.Buffer
	err = vm.Translate(ctx, fileName, f, &b,
		vm.Comments(cfg.Comments),
		vm.Strict(cfg.Strict),
		vm.Halt(cfg.Halt),
		vm.Logger(log))
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// execute runs rom in the simulator with the RAM initialized from cfg.
func execute(rom []hack.Cell, cfg *runConfig) (*hack.Instance, error) {
	opts, err := cfg.pokes()
	if err != nil {
		return nil, err
	}
	opts = append(opts, hack.MaxCycles(cfg.Cycles))
	i, err := hack.New(rom, opts...)
	if err != nil {
		return nil, err
	}
	return i, i.Run()
}

func process(ctx context.Context, src string, cfg *config, opts *options, stdout io.Writer, log *slog.Logger) error {
	code, err := translate(ctx, src, cfg, log)
	if err != nil {
		return err
	}
	var rom []hack.Cell
	if opts.hack || opts.run {
		if rom, err = asm.Assemble(src, bytes.NewReader(code)); err != nil {
			return errors.Wrap(err, "assembly of generated code failed")
		}
	}

	emit := func(w io.Writer) error {
		if opts.hack {
			return hack.WriteROM(w, rom)
		}
		_, err := w.Write(code)
		return errors.Wrap(err, "write failed")
	}
	if opts.outFileName != "" {
		err = writeFile(opts.outFileName, emit)
	} else {
		err = emit(stdout)
	}
	if err != nil {
		return err
	}
	log.Debug("translation complete", "src", src, "bytes", len(code), "instructions", len(rom))

	if !opts.run {
		return nil
	}
	i, err := execute(rom, &cfg.Run)
	if i != nil {
		log.Info("run complete", "cycles", i.Cycles(), "halted", i.Halted(), "sp", i.RAM[hack.SP])
	}
	if err != nil {
		return err
	}
	if opts.dump {
		return dumpState(i, stdout)
	}
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		opts       options
		cfgName    string
		noComments bool
		strict     bool
		halt       bool
		cycles     int64
	)
	fs := flag.NewFlagSet("vmtranslate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: vmtranslate [flags] File.vm\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.outFileName, "o", "", "write output to `filename` instead of standard output")
	fs.StringVar(&cfgName, "config", "", "load settings from YAML file `filename`")
	fs.BoolVar(&noComments, "nocomments", false, "do not echo VM instructions as comments")
	fs.BoolVar(&strict, "strict", false, "fail on unknown opcodes")
	fs.BoolVar(&halt, "halt", false, "append a terminating loop")
	fs.BoolVar(&opts.hack, "hack", false, "output Hack machine code instead of assembly")
	fs.BoolVar(&opts.run, "run", false, "run the translated program in the simulator")
	fs.BoolVar(&opts.dump, "dump", false, "dump the simulator state after a run (implies -run)")
	fs.Int64Var(&cycles, "cycles", 0, "simulator cycle limit (default from config, 100000)")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging and diagnostics")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	src := fs.Arg(0)
	if filepath.Ext(src) != ".vm" {
		fmt.Fprintf(stderr, "%s: expected a .vm file\n", src)
		return exitError
	}

	cfg := defaultConfig()
	if cfgName != "" {
		if err := loadConfig(cfgName, cfg); err != nil {
			return report(stderr, err, opts.debug)
		}
	}
	// flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nocomments":
			cfg.Comments = !noComments
		case "strict":
			cfg.Strict = strict
		case "halt":
			cfg.Halt = halt
		case "cycles":
			cfg.Run.Cycles = cycles
		}
	})
	if opts.dump {
		opts.run = true
	}

	log := newLogger(stderr, opts.debug)
	return report(stderr, process(ctx, src, cfg, &opts, stdout, log), opts.debug)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	atexit.Exit(run(ctx, os.Args[1:], stdout, os.Stderr))
}
