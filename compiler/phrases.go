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
	"strconv"

	"github.com/db47h/iwashi/vm"
)

// MaxPointer is the largest address accepted by a PTR phrase.
const MaxPointer = 2018

var phrases = [...]struct {
	text string
	op   vm.Opcode
}{
	{"イワシがいっぱいだあ…ちょっとだけもらっていこうかな", vm.OpGetChar},
	{"イワシはここに置いていこう", vm.OpPutChar},
	{"イワシを数えてみよう", vm.OpGetNumber},
	{"イワシの数を教えてあげる", vm.OpPutNumber},
	{"イワシが一匹増えた", vm.OpIncrement},
	{"イワシが一匹減った", vm.OpDecrement},
	{"イワシがいなくなっちゃった", vm.OpZeroOut},
	{"今日はもう帰ろう", vm.OpExit},
	{"イワシがひっくり返った", vm.OpNegate},
	{"イワシとイワシを合わせよう", vm.OpAdd},
	{"イワシからイワシを引いてみよう", vm.OpSubtract},
	{"イワシにイワシを掛けてみよう", vm.OpMultiply},
	{"イワシをイワシで分けてみよう", vm.OpDivide},
}

// parametrized phrases
const (
	jumpPositiveSuffix = "へ泳いでいこう"
	labelSuffix        = "に着いた"
	jumpZeroPrefix     = "イワシがいなければ"
	pointerSuffix      = "番目の水槽をのぞく"
)

var phraseIndex = make(map[string]vm.Opcode)

func init() {
	for _, p := range phrases {
		phraseIndex[p.text] = p.op
	}
}

// Phrase returns the source phrase that compiles to ins.
func Phrase(ins vm.Instruction) string {
	switch ins.Op {
	case vm.OpNop:
		return ins.Label + labelSuffix
	case vm.OpJumpIfPositive:
		return ins.Label + jumpPositiveSuffix
	case vm.OpJumpIfZero:
		return jumpZeroPrefix + ins.Label
	case vm.OpSetPointer:
		return strconv.Itoa(ins.Arg) + pointerSuffix
	}
	for _, p := range phrases {
		if p.op == ins.Op {
			return p.text
		}
	}
	return ""
}
