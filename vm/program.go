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

// Instruction is a single decoded instruction. Label is the jump target of
// JGZ and JZ and the name defined by a NOP label target. Arg is the address
// loaded by PTR.
type Instruction struct {
	Op    Opcode
	Label string
	Arg   int
}

func (ins Instruction) String() string {
	switch {
	case ins.Op == OpSetPointer:
		return ins.Op.String() + " " + strconv.Itoa(ins.Arg)
	case ins.Op.IsJump():
		return ins.Op.String() + " " + ins.Label
	}
	return ins.Op.String()
}

// Program is a compiled iwashi program. The index of an instruction in Code is
// its address. Labels maps label names to the address of the NOP defining
// them.
type Program struct {
	Code   []Instruction
	Labels map[string]int
}

// Validate checks that all jumps in the program resolve to an address within
// Code.
func (p *Program) Validate() error {
	for pc, ins := range p.Code {
		if !ins.Op.IsJump() {
			continue
		}
		addr, ok := p.Labels[ins.Label]
		if !ok {
			return errors.Errorf("%d: %v: undefined label %s", pc, ins.Op, ins.Label)
		}
		if addr < 0 || addr >= len(p.Code) {
			return errors.Errorf("%d: %v: label %s points outside the program (%d)", pc, ins.Op, ins.Label, addr)
		}
	}
	return nil
}
