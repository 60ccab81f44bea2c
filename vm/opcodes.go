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

import "strconv"

// Opcode identifies an iwashi VM instruction.
type Opcode int

// Iwashi Virtual Machine Opcodes.
const (
	OpNop Opcode = iota
	OpGetChar
	OpPutChar
	OpGetNumber
	OpPutNumber
	OpIncrement
	OpDecrement
	OpJumpIfPositive
	OpJumpIfZero
	OpZeroOut
	OpNegate
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpSetPointer
	OpExit
)

var opcodes = [...]string{
	"NOP",
	"GETC",
	"PUTC",
	"GETN",
	"PUTN",
	"INC",
	"DEC",
	"JGZ",
	"JZ",
	"ZERO",
	"NEG",
	"ADD",
	"SUB",
	"MUL",
	"DIV",
	"PTR",
	"EXIT",
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for i, v := range opcodes {
		opcodeIndex[v] = Opcode(i)
	}
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodes) {
		return "Opcode(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodes[op]
}

// ParseOpcode returns the opcode for the given mnemonic.
func ParseOpcode(mnemonic string) (Opcode, bool) {
	op, ok := opcodeIndex[mnemonic]
	return op, ok
}

// IsJump reports whether op takes a label operand that must resolve to an
// address.
func (op Opcode) IsJump() bool {
	return op == OpJumpIfPositive || op == OpJumpIfZero
}
