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

// Package compiler compiles iwashi source code into programs for the iwashi VM,
// and provides a disassembler for debugging.
//
// An iwashi source file is a sequence of lines, each line being one phrase.
// Leading and trailing white space is ignored, as are empty lines. Each phrase
// compiles to exactly one instruction.
//
// Supported phrases:
//
//	The current cell is the memory cell selected by the pointer register. A and B
//	are the two cells following it. X is any non-empty text, N is a decimal
//	address in [0, 2018].
//
//	asm	phrase						description
//	----	---------------------------------------------	-------------------------------------------------
//	GETC	イワシがいっぱいだあ…ちょっとだけもらっていこうかな	read a byte into the current cell, -1 at end of input
//	PUTC	イワシはここに置いていこう				write the current cell as a byte
//	GETN	イワシを数えてみよう					read a line holding a decimal number into the current cell
//	PUTN	イワシの数を教えてあげる				write the current cell as a decimal number
//	INC	イワシが一匹増えた					increment the current cell
//	DEC	イワシが一匹減った					decrement the current cell
//	ZERO	イワシがいなくなっちゃった				set the current cell to 0
//	EXIT	今日はもう帰ろう					stop the program
//	NEG	イワシがひっくり返った					negate the current cell
//	ADD	イワシとイワシを合わせよう				store A + B in the current cell
//	SUB	イワシからイワシを引いてみよう				store A - B in the current cell
//	MUL	イワシにイワシを掛けてみよう				store A * B in the current cell
//	DIV	イワシをイワシで分けてみよう				store A modulo B (always >= 0) in the current cell
//	JGZ	Xへ泳いでいこう						jump to label X if the current cell is > 0
//	NOP	Xに着いた						define label X
//	JZ	イワシがいなければX					jump to label X if the current cell is 0
//	PTR	N番目の水槽をのぞく					set the pointer register to N
//
// Phrases are matched in the order of the table above, so that a label name
// may end with another phrase's suffix.
//
// Labels can be used before they are defined. Defining the same label twice is
// an error.
//
// Example: cat
//
//	ビルに着いた
//	イワシがいっぱいだあ…ちょっとだけもらっていこうかな
//	イワシがひっくり返った
//	イワシへ泳いでいこう
//	イワシがひっくり返った
//	イワシはここに置いていこう
//	ビルへ泳いでいこう
//	イワシに着いた
package compiler
