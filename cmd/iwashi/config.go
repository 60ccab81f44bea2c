// This file is part of iwashi - https://github.com/db47h/iwashi
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
	"flag"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config holds the command settings. It can be loaded from a TOML file with
// the -config flag. Flags set on the command line override it.
type config struct {
	Raw       bool     `toml:"raw"`
	Debug     bool     `toml:"debug"`
	Dump      bool     `toml:"dump"`
	Disasm    bool     `toml:"disasm"`
	Verbosity int      `toml:"verbosity"`
	With      []string `toml:"with"`
}

func defaultConfig() config {
	return config{Raw: true}
}

type fileList []string

func (f *fileList) String() string     { return "" }
func (f *fileList) Set(s string) error { *f = append(*f, s); return nil }
func (f *fileList) Get() interface{}   { return *f }

// flags are the command line flags. They are kept apart from config so that we
// can tell which ones were set explicitly.
type flags struct {
	config    string
	noRaw     bool
	debug     bool
	dump      bool
	disasm    bool
	verbosity int
	with      fileList
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "load settings from TOML file `filename`")
	fs.BoolVar(&f.noRaw, "noraw", false, "disable raw terminal IO")
	fs.BoolVar(&f.debug, "debug", false, "enable debug diagnostics")
	fs.BoolVar(&f.dump, "dump", false, "dump VM state and memory upon exit")
	fs.BoolVar(&f.disasm, "disasm", false, "print a disassembly of the program and exit")
	fs.IntVar(&f.verbosity, "v", 0, "log verbosity: 1 for info, 2 for debug and execution trace")
	fs.Var(&f.with, "with", "Add `filename` to the input list (can be specified multiple times)")
}

// loadConfig loads the configuration file if any and applies the flags
// explicitly set in fs.
func loadConfig(fs *flag.FlagSet, f *flags) (config, error) {
	cfg := defaultConfig()
	if f.config != "" {
		if _, err := toml.DecodeFile(f.config, &cfg); err != nil {
			return cfg, errors.Wrap(err, "config")
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "noraw":
			cfg.Raw = !f.noRaw
		case "debug":
			cfg.Debug = f.debug
		case "dump":
			cfg.Dump = f.dump
		case "disasm":
			cfg.Disasm = f.disasm
		case "v":
			cfg.Verbosity = f.verbosity
		case "with":
			cfg.With = append(cfg.With, f.with...)
		}
	})
	return cfg, nil
}
