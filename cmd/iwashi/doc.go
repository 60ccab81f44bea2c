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

// Command iwashi compiles and runs iwashi programs.
//
// Usage:
//
//	iwashi [options] file.iwashi
//
// The program reads from stdin and writes to stdout. When stdin is a terminal,
// it is switched to raw mode so that programs can read keystrokes as they are
// typed; CTRL-D ends input. Use -noraw to keep the terminal line buffered.
//
// Command line options:
//
//	-config filename
//		load settings from a TOML file
//	-noraw
//		disable raw terminal IO
//	-debug
//		print error stack traces and the faulting instruction
//	-dump
//		dump VM state and memory upon exit
//	-disasm
//		print a disassembly of the program and exit
//	-v level
//		log verbosity: 1 for info, 2 for debug and execution trace
//	-with filename
//		feed the content of filename to the program before stdin. Can be
//		specified multiple times.
//
// A configuration file uses the long names of the options:
//
//	raw = false
//	debug = true
//	verbosity = 1
//	with = ["numbers.txt"]
//
// Options given on the command line take precedence over the configuration
// file, except -with files which are appended to the configured list.
package main
