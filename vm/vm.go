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

package vm

import (
	"fmt"
	"io"

	"github.com/db47h/iwashi/internal/ewr"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// DefaultMemSize is the default memory size in cells.
const DefaultMemSize = 2020

// State is the execution state of an Instance.
type State int

// Instance states.
const (
	Running State = iota
	Ended
)

func (s State) String() string {
	if s == Ended {
		return "ended"
	}
	return "running"
}

// Instance represents an iwashi VM instance.
type Instance struct {
	PC       int    // Program Counter
	Ptr      int    // Pointer register
	Mem      []Cell // Memory
	prog     *Program
	state    State
	insCount int64
	input    io.ByteReader
	output   io.Writer
	log      commonlog.Logger
}

// Option interface
type Option func(*Instance) error

// Input sets the VM input. If r does not implement io.ByteReader, it will be
// wrapped into a bufio.Reader. Use an *InputBuffer to push bytes into a running VM
// from another goroutine.
//
// Without input, GETC behaves as if the input was closed.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		i.input = newByteReader(r)
		return nil
	}
}

// Output sets the VM output. If w implements Flush() error, it is flushed
// before each read from the input and when execution ends. If it implements
// io.Closer, it is closed when execution ends.
func Output(w io.Writer) Option {
	return func(i *Instance) error {
		i.output = w
		return nil
	}
}

// MemSize sets the memory size in cells. The default is 2020 cells.
func MemSize(size int) Option {
	return func(i *Instance) error {
		if size <= 0 {
			return errors.Errorf("invalid memory size %d", size)
		}
		i.Mem = make([]Cell, size)
		return nil
	}
}

// Logger sets the logger used to trace execution. Each executed instruction
// is logged at debug level.
func Logger(log commonlog.Logger) Option {
	return func(i *Instance) error {
		i.log = log
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new iwashi Virtual Machine instance for the given program.
//
// Options will be set by calling SetOptions.
func New(prog *Program, opts ...Option) (*Instance, error) {
	if prog == nil {
		return nil, errors.New("nil program")
	}
	if err := prog.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid program")
	}
	i := &Instance{
		prog: prog,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.Mem == nil {
		i.Mem = make([]Cell, DefaultMemSize)
	}
	return i, nil
}

// Program returns the program run by the instance.
func (i *Instance) Program() *Program {
	return i.prog
}

// State returns the current execution state.
func (i *Instance) State() State {
	return i.state
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Dump writes the VM registers and all non-zero memory cells to the specified
// io.Writer.
func (i *Instance) Dump(w io.Writer) error {
	ew := ewr.New(w)
	fmt.Fprintf(ew, "state: %v\npc: %d\nptr: %d\ninstructions: %d\n", i.state, i.PC, i.Ptr, i.insCount)
	for addr, v := range i.Mem {
		if v != 0 {
			fmt.Fprintf(ew, "% 6d\t%d\n", addr, v)
		}
	}
	return ew.Err
}
