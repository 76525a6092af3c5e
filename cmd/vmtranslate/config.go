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
	"os"
	"strconv"

	"github.com/db47h/hackvm/asm"
	"github.com/db47h/hackvm/hack"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type config struct {
	Comments bool      `yaml:"comments"`
	Strict   bool      `yaml:"strict"`
	Halt     bool      `yaml:"halt"`
	Run      runConfig `yaml:"run"`
}

type runConfig struct {
	Cycles int64          `yaml:"cycles"`
	RAM    map[string]int `yaml:"ram"`
}

func defaultConfig() *config {
	return &config{
		Comments: true,
		Run: runConfig{
			Cycles: 100000,
			RAM:    map[string]int{"SP": hack.StackBase},
		},
	}
}

// loadConfig updates cfg with the settings in the YAML file fileName. RAM
// entries are merged with the existing ones.
func loadConfig(fileName string, cfg *config) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "open failed")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil {
		return errors.Wrapf(err, "%s", fileName)
	}
	return nil
}

// pokes returns the simulator options that initialize RAM. Keys are
// predefined symbols or decimal addresses.
func (c *runConfig) pokes() ([]hack.Option, error) {
	opts := make([]hack.Option, 0, len(c.RAM))
	for k, v := range c.RAM {
		a, ok := asm.Symbol(k)
		if !ok {
			n, err := strconv.ParseUint(k, 10, 15)
			if err != nil {
				return nil, errors.Errorf("ram: invalid address %q", k)
			}
			a = hack.Cell(n)
		}
		if v < -32768 || v > 32767 {
			return nil, errors.Errorf("ram: %s: value %d out of range", k, v)
		}
		opts = append(opts, hack.Poke(int(a), hack.Cell(v)))
	}
	return opts, nil
}
