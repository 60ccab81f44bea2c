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

package compiler

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/db47h/iwashi/internal/ewr"
	"github.com/db47h/iwashi/vm"
	"github.com/pkg/errors"
)

// Error is a single compilation error. Line is the 1-based line number in the
// source and Text the trimmed content of that line.
type Error struct {
	Name string
	Line int
	Text string
	Msg  string
}

func (e Error) Error() string {
	return e.Name + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
}

// ErrCompile is the error type returned by Compile. It holds up to 10 errors in
// the order they were found.
type ErrCompile []Error

func (e ErrCompile) Error() string {
	var msgs = make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Compile compiles iwashi source code read from the supplied io.Reader and
// returns the resulting program and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// Compilation errors are returned as an ErrCompile value; read errors are
// returned as is.
func Compile(name string, r io.Reader) (*vm.Program, error) {
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return CompileString(name, string(src))
}

// CompileString compiles the iwashi source code in src.
func CompileString(name, src string) (*vm.Program, error) {
	return newParser(name).Parse(src)
}

// Disassemble writes a disassembly of the instruction at address pc in prog
// to the specified io.Writer and returns any write error.
func Disassemble(w io.Writer, prog *vm.Program, pc int) error {
	ew := ewr.New(w)
	ins := prog.Code[pc]
	io.WriteString(ew, ins.String())
	if ins.Op == vm.OpNop && ins.Label != "" {
		if addr, ok := prog.Labels[ins.Label]; ok && addr == pc {
			io.WriteString(ew, "\t:")
			io.WriteString(ew, ins.Label)
		}
	}
	return ew.Err
}

// DisassembleAll writes a disassembly of all instructions in prog to the
// specified io.Writer. It will return any write error.
func DisassembleAll(w io.Writer, prog *vm.Program) error {
	ew := ewr.New(w)
	for pc := range prog.Code {
		fmt.Fprintf(ew, "% 6d\t", pc)
		Disassemble(ew, prog, pc)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
