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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/db47h/iwashi/compiler"
	"github.com/db47h/iwashi/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const eot = 4

// eotReader turns a CTRL-D into io.EOF. In raw tty mode the terminal no longer
// does it for us.
type eotReader struct {
	r   io.Reader
	eof bool
}

func (e *eotReader) Read(p []byte) (int, error) {
	if e.eof {
		return 0, io.EOF
	}
	n, err := e.r.Read(p)
	for k := 0; k < n; k++ {
		if p[k] == eot {
			e.eof = true
			return k, io.EOF
		}
	}
	return n, err
}

func setupIO(cfg *config) (raw bool, tearDown func()) {
	var err error
	if cfg.Raw {
		tearDown, err = setRawIO()
		if err != nil {
			return false, nil
		}
		return true, tearDown
	}
	return false, nil
}

// feed copies the -with files then stdin into in. Errors are logged since
// there is no one to return them to.
func feed(in *vm.InputBuffer, files []string, stdin io.Reader, log commonlog.Logger) {
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			log.Errorf("%v", err)
			continue
		}
		_, err = io.Copy(in, f)
		f.Close()
		if err != nil {
			log.Errorf("%s: %v", name, err)
		}
	}
	if err := in.Feed(stdin); err != nil {
		log.Errorf("stdin: %v", err)
	}
}

func atExit(cfg *config, i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !cfg.Debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: %v, Ptr: %v, Instructions: %v\n", i.PC, i.Ptr, i.InstructionCount())
		if prog := i.Program(); i.PC < len(prog.Code) {
			compiler.Disassemble(os.Stderr, prog, i.PC)
			fmt.Fprintln(os.Stderr)
		}
	}
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] file.iwashi\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var err error
	var i *vm.Instance
	var fl flags
	cfg := defaultConfig()

	// registered first so that it runs last
	defer func() {
		atExit(&cfg, i, err)
	}()

	flag.Usage = usage
	fl.register(flag.CommandLine)
	flag.Parse()

	cfg, err = loadConfig(flag.CommandLine, &fl)
	if err != nil {
		return
	}
	commonlog.Configure(cfg.Verbosity, nil)
	log := commonlog.GetLogger("iwashi")

	if flag.NArg() != 1 {
		usage()
		err = errors.New("expected exactly one source file")
		return
	}

	name := flag.Arg(0)
	f, err := os.Open(name)
	if err != nil {
		return
	}
	prog, err := compiler.Compile(name, f)
	f.Close()
	if err != nil {
		return
	}
	log.Infof("compiled %s: %d instructions, %d labels", name, len(prog.Code), len(prog.Labels))

	if cfg.Disasm {
		w := bufio.NewWriter(os.Stdout)
		if err = compiler.DisassembleAll(w, prog); err == nil {
			err = w.Flush()
		}
		return
	}

	var stdin io.Reader = os.Stdin
	rawtty, ioTearDownFn := setupIO(&cfg)
	if ioTearDownFn != nil {
		defer ioTearDownFn()
	}
	if rawtty {
		stdin = &eotReader{r: os.Stdin}
	}
	log.Debugf("raw tty: %v", rawtty)

	in := vm.NewInputBuffer()
	go feed(in, cfg.With, stdin, log)

	i, err = vm.New(prog,
		vm.Input(in),
		vm.Output(bufio.NewWriter(os.Stdout)),
		vm.Logger(log))
	if err != nil {
		return
	}
	err = i.Run()
	log.Infof("%s: %v after %d instructions", name, i.State(), i.InstructionCount())
	if err == nil && cfg.Dump {
		err = i.Dump(os.Stdout)
	}
}
