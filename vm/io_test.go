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

package vm_test

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/db47h/iwashi/vm"
	"github.com/pkg/errors"
)

// closeCounter is a bytes.Buffer that counts calls to Flush and Close.
type closeCounter struct {
	bytes.Buffer
	flushed int
	closed  int
}

func (w *closeCounter) Flush() error { w.flushed++; return nil }
func (w *closeCounter) Close() error { w.closed++; return nil }

// chanWriter sends every write to a channel.
type chanWriter chan string

func (w chanWriter) Write(p []byte) (int, error) {
	w <- string(p)
	return len(p), nil
}

func (w chanWriter) Close() error {
	close(w)
	return nil
}

func assertEqual(t *testing.T, name string, expected, got string) {
	if expected != got {
		t.Errorf("%s: Expected: %q, Got: %q", name, expected, got)
	}
}

func Test_InputBuffer(t *testing.T) {
	in := vm.NewInputBuffer()
	in.Write([]byte("ab"))
	in.Write(nil)
	in.Write([]byte("c"))
	if in.Len() != 3 {
		t.Fatalf("Len: %d", in.Len())
	}
	for _, c := range []byte("abc") {
		b, err := in.ReadByte()
		if err != nil || b != c {
			t.Fatalf("ReadByte: %c, %v, expected %c", b, err, c)
		}
	}
	in.Write([]byte("d"))
	if err := in.Close(); err != nil {
		t.Fatal(err)
	}
	if err := in.Close(); err != vm.ErrInputClosed {
		t.Errorf("second Close: %v", err)
	}
	if _, err := in.Write([]byte("e")); err != vm.ErrInputClosed {
		t.Errorf("Write after Close: %v", err)
	}
	// pending bytes can be read after Close
	if b, err := in.ReadByte(); err != nil || b != 'd' {
		t.Errorf("ReadByte: %c, %v", b, err)
	}
	for n := 0; n < 2; n++ {
		if _, err := in.ReadByte(); err != io.EOF {
			t.Errorf("ReadByte on closed input: %v", err)
		}
	}
}

func Test_InputBuffer_concurrent(t *testing.T) {
	in := vm.NewInputBuffer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for n := 0; n < 1000; n++ {
			in.Write([]byte{byte(n)})
		}
		in.Close()
	}()
	for n := 0; ; n++ {
		b, err := in.ReadByte()
		if err == io.EOF {
			if n != 1000 {
				t.Errorf("read %d bytes, expected 1000", n)
			}
			break
		}
		if b != byte(n) {
			t.Fatalf("byte %d: got %d", n, b)
		}
	}
	wg.Wait()
}

func Test_InputBuffer_Feed(t *testing.T) {
	in := vm.NewInputBuffer()
	if err := in.Feed(strings.NewReader("hoge")); err != nil {
		t.Fatal(err)
	}
	if in.Len() != 4 {
		t.Errorf("Len: %d", in.Len())
	}
	if err := in.Close(); err != vm.ErrInputClosed {
		t.Errorf("Feed did not close the input: %v", err)
	}
}

func Test_cat(t *testing.T) {
	prog := compileFile(t, "../examples/cat.iwashi")
	in := vm.NewInputBuffer()
	in.Write([]byte("hoge"))
	in.Close()
	w := &closeCounter{}
	i, err := vm.New(prog, vm.Input(in), vm.Output(w))
	if err != nil {
		t.Fatal(err)
	}
	if err = i.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	assertEqual(t, "cat", "hoge", w.String())
	if w.closed != 1 {
		t.Errorf("output closed %d times", w.closed)
	}
	// one flush before each of the 5 reads, and one at the end
	if w.flushed != 6 {
		t.Errorf("output flushed %d times", w.flushed)
	}
}

// Check that the VM waits for input and echoes it back as it arrives.
func Test_cat_interactive(t *testing.T) {
	prog := compileFile(t, "../examples/cat.iwashi")
	in := vm.NewInputBuffer()
	out := make(chanWriter)
	i, err := vm.New(prog, vm.Input(in), vm.Output(out))
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- i.Run() }()

	for _, s := range []string{"h", "og", "e"} {
		in.Write([]byte(s))
		for _, c := range []byte(s) {
			select {
			case got := <-out:
				assertEqual(t, "cat_interactive", string(c), got)
			case <-time.After(5 * time.Second):
				t.Fatal("timeout waiting for output")
			}
		}
	}
	select {
	case err = <-done:
		t.Fatalf("VM ended before input was closed: %v", err)
	default:
	}
	in.Close()
	select {
	case err = <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for the VM to end")
	}
	if _, ok := <-out; ok {
		t.Error("output not closed")
	}
}

func Test_GetChar_eof(t *testing.T) {
	i := setup(t, "GETC; PTR 1; GETC", nil, vm.Input(strings.NewReader("A")))
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if i.Mem[0] != 'A' || i.Mem[1] != vm.EOF {
		t.Errorf("Unexpected memory: %v", i.Mem[:2])
	}
	// without input, GETC reads -1
	i = setup(t, "GETC", nil)
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	if i.Mem[0] != -1 {
		t.Errorf("GETC without input: %d", i.Mem[0])
	}
}

func Test_GetNumber(t *testing.T) {
	var tests = [...]struct {
		code  string
		input string
		exp   C
	}{
		{"GETN", "123\n", C{123}},
		{"GETN", "123", C{123}},
		{"GETN; PTR 1; GETN", "007\n42\n", C{7, 42}},
		{"GETN; PTR 1; GETN", "12\r\n34\r\n", C{12, 34}},
		{"GETN; PTR 1; GETN", "12\r34\n", C{12, 4}},
		{"GETN; PTR 1; GETN", "9223372036854775807\n1\n", C{9223372036854775807, 1}},
	}
	for _, test := range tests {
		i := setup(t, test.code, nil, vm.Input(strings.NewReader(test.input)))
		if err := i.Run(); err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		for addr, v := range test.exp {
			if i.Mem[addr] != v {
				t.Errorf("%q: Expected %v, got %v", test.input, test.exp, i.Mem[:len(test.exp)])
				break
			}
		}
	}
}

func Test_GetNumber_invalid(t *testing.T) {
	for _, input := range []string{"\n", "", "12a\n", "-1\n", " 1\n", "+1\n", "99999999999999999999\n"} {
		i := setup(t, "GETN; INC", nil, vm.Input(strings.NewReader(input)))
		err := i.Run()
		e, ok := errors.Cause(err).(*vm.InvalidNumberError)
		if !ok {
			t.Errorf("%q: Unexpected error: %v", input, err)
			continue
		}
		if exp := strings.TrimSuffix(input, "\n"); e.Text != exp {
			t.Errorf("%q: bad error text %q", input, e.Text)
		}
		if i.Mem[0] != 0 || i.PC != 0 {
			t.Errorf("%q: execution continued after error", input)
		}
	}
}

func Test_PutNumber(t *testing.T) {
	var b bytes.Buffer
	i := setup(t, "PUTN; PTR 1; PUTN; PTR 2; PUTN; PUTC", C{0, -42, 10}, vm.Output(&b))
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "PutNumber", "0-4210\n", b.String())
}

func Test_PutChar_truncates(t *testing.T) {
	var b bytes.Buffer
	i := setup(t, "PUTC; PTR 1; PUTC", C{256 + 'a', -1}, vm.Output(&b))
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "PutChar", "a\xff", b.String())
}

type errorWriter struct{}

func (errorWriter) Write(p []byte) (int, error) { return 0, errors.New("broken") }

func Test_output_error(t *testing.T) {
	i := setup(t, "PUTC; INC", nil, vm.Output(errorWriter{}))
	err := i.Run()
	if err == nil || errors.Cause(err).Error() != "broken" {
		t.Errorf("Unexpected error: %v", err)
	}
	if i.Mem[0] != 0 {
		t.Error("execution continued after error")
	}
}
