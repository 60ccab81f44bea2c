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

// Package vm implements the iwashi VM.
//
// The VM has no stack. It operates on a flat memory of signed integer cells
// (2020 by default) through a single pointer register, selected with the PTR
// instruction. Arithmetic instructions read their operands from the two cells
// following the pointer and store the result in the current cell. Operands
// past the end of memory read as 0.
//
// Programs are usually produced by the compiler package from iwashi source
// code. An Instance runs a single program, and is owned by a single goroutine.
// The only instructions that may block are GETC and GETN, which read from the
// VM input. Use an *InputBuffer to feed a running VM from another goroutine:
//
//	in := vm.NewInputBuffer()
//	i, err := vm.New(prog, vm.Input(in), vm.Output(bufio.NewWriter(os.Stdout)))
//	if err != nil {
//		// handle error
//	}
//	go in.Feed(os.Stdin)
//	err = i.Run()
//
// Once the input is closed and drained, GETC stores -1 in the current cell.
//
// When execution ends, the VM output is flushed and closed, if it supports it.
// Do not pass os.Stdout directly as it would be closed.
package vm
