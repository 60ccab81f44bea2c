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
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned by Run when DIV is executed with a zero
	// divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrEnded is returned when trying to execute instructions on an instance
	// that has already ended.
	ErrEnded = errors.New("vm: execution ended")

	// ErrInputClosed is returned when writing to or closing an InputBuffer that has
	// already been closed.
	ErrInputClosed = errors.New("vm: input closed")
)

// InvalidNumberError is returned by Run when GETN reads a token that is not a
// non-empty string of ASCII digits.
type InvalidNumberError struct {
	Text string
}

func (e *InvalidNumberError) Error() string {
	return "invalid number " + strconv.Quote(e.Text)
}

// OutOfBoundsError is returned by Run when an instruction is executed while
// the pointer register is out of the memory range. This always indicates a bug
// in the iwashi program, usually a PTR to an address past the end of memory.
type OutOfBoundsError struct {
	Ptr  int
	Size int
}

func (e *OutOfBoundsError) Error() string {
	return "pointer " + strconv.Itoa(e.Ptr) + " out of bounds [0, " + strconv.Itoa(e.Size) + ")"
}
