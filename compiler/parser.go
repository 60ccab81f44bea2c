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
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/iwashi/vm"
)

// maxErrors is the maximum number of errors reported by a single compilation.
const maxErrors = 10

type labelSite struct {
	line    int
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	name   string
	code   []vm.Instruction
	labels map[string]*label
	errs   ErrCompile
}

func newParser(name string) *parser {
	return &parser{
		name:   name,
		labels: make(map[string]*label),
	}
}

func (p *parser) error(line int, text, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, Error{Name: p.name, Line: line, Text: text, Msg: msg})
	}
}

func (p *parser) write(ins vm.Instruction) {
	p.code = append(p.code, ins)
}

func (p *parser) useLabel(name string, line int) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{line, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{line, len(p.code)})
}

func (p *parser) defineLabel(name string, line int, text string) {
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error(line, text, "label redefinition: "+name+", previous definition at line "+strconv.Itoa(l.line))
			return
		}
		l.labelSite = labelSite{line, len(p.code)}
		return
	}
	p.labels[name] = &label{labelSite{line, len(p.code)}, nil}
}

// splitLines splits src on any line ending convention.
func splitLines(src string) []string {
	src = strings.Replace(src, "\r\n", "\n", -1)
	src = strings.Replace(src, "\r", "\n", -1)
	return strings.Split(src, "\n")
}

// parsePointer parses the address of a PTR phrase.
func parsePointer(s string) (int, bool) {
	if len(s) == 0 || len(s) > len(strconv.Itoa(MaxPointer)) {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxPointer {
		return 0, false
	}
	return n, true
}

// parseLine compiles a single trimmed, non-empty line.
func (p *parser) parseLine(line int, s string) {
	if op, ok := phraseIndex[s]; ok {
		p.write(vm.Instruction{Op: op})
		return
	}
	if n := strings.TrimSuffix(s, jumpPositiveSuffix); len(n) > 0 && len(n) < len(s) {
		p.useLabel(n, line)
		p.write(vm.Instruction{Op: vm.OpJumpIfPositive, Label: n})
		return
	}
	if n := strings.TrimSuffix(s, labelSuffix); len(n) > 0 && len(n) < len(s) {
		p.defineLabel(n, line, s)
		p.write(vm.Instruction{Op: vm.OpNop, Label: n})
		return
	}
	if n := strings.TrimPrefix(s, jumpZeroPrefix); len(n) > 0 && len(n) < len(s) {
		p.useLabel(n, line)
		p.write(vm.Instruction{Op: vm.OpJumpIfZero, Label: n})
		return
	}
	if n := strings.TrimSuffix(s, pointerSuffix); len(n) > 0 && len(n) < len(s) {
		addr, ok := parsePointer(n)
		if !ok {
			p.error(line, s, "invalid address "+strconv.Quote(n)+", expected an integer in [0, "+strconv.Itoa(MaxPointer)+"]")
		}
		p.write(vm.Instruction{Op: vm.OpSetPointer, Arg: addr})
		return
	}
	p.error(line, s, "unknown phrase "+strconv.Quote(s))
}

// Parse does the parsing and compiling.
func (p *parser) Parse(src string) (*vm.Program, error) {
	for n, s := range splitLines(src) {
		if len(p.errs) >= maxErrors {
			break
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p.parseLine(n+1, s)
	}

	// resolve labels, reporting undefined ones in order of first use
	undef := make([]string, 0)
	labels := make(map[string]int, len(p.labels))
	for n, l := range p.labels {
		if l.address == -1 {
			undef = append(undef, n)
			continue
		}
		labels[n] = l.address
	}
	sort.Slice(undef, func(i, j int) bool {
		return p.labels[undef[i]].uses[0].line < p.labels[undef[j]].uses[0].line
	})
	for _, n := range undef {
		u := p.labels[n].uses[0]
		p.error(u.line, Phrase(p.code[u.address]), "missing label definition for "+n)
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return &vm.Program{Code: p.code, Labels: labels}, nil
}
