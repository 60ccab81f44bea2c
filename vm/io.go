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
	"bufio"
	"io"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

// EOF is the value stored by GETC once the input is closed and drained.
const EOF Cell = -1

type flusher interface {
	Flush() error
}

// InputBuffer is an unbounded FIFO byte queue. A producer appends to it with Write
// and signals the end of data with Close, while the VM consumes it with
// ReadByte, which blocks until a byte is available or the queue is closed.
//
// InputBuffer is safe for concurrent use by one producer and one consumer.
type InputBuffer struct {
	mu     sync.Mutex
	cond   sync.Cond
	buf    []byte
	closed bool
}

// NewInputBuffer returns a new, empty and open InputBuffer.
func NewInputBuffer() *InputBuffer {
	in := new(InputBuffer)
	in.cond.L = &in.mu
	return in
}

// Write appends p to the queue. It fails with ErrInputClosed once the queue
// has been closed.
func (in *InputBuffer) Write(p []byte) (n int, err error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return 0, ErrInputClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	in.buf = append(in.buf, p...)
	in.cond.Signal()
	return len(p), nil
}

// Close marks the end of data. Pending bytes can still be read. Close can be
// called only once, subsequent calls return ErrInputClosed.
func (in *InputBuffer) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return ErrInputClosed
	}
	in.closed = true
	in.cond.Broadcast()
	return nil
}

// ReadByte returns the byte at the front of the queue. If the queue is empty,
// it blocks until a Write or Close. It returns io.EOF when the queue is closed
// and empty.
func (in *InputBuffer) ReadByte() (byte, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for len(in.buf) == 0 && !in.closed {
		in.cond.Wait()
	}
	if len(in.buf) == 0 {
		return 0, io.EOF
	}
	c := in.buf[0]
	in.buf = in.buf[1:]
	return c, nil
}

// Read reads up to len(p) bytes from the queue. It blocks until at least one
// byte is available or the queue is closed.
func (in *InputBuffer) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	for len(in.buf) == 0 && !in.closed {
		in.cond.Wait()
	}
	if len(in.buf) == 0 {
		return 0, io.EOF
	}
	n = copy(p, in.buf)
	in.buf = in.buf[n:]
	return n, nil
}

// Len returns the number of buffered bytes.
func (in *InputBuffer) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.buf)
}

// Feed copies r into the queue until r returns io.EOF or any other error, then
// closes the queue. It returns the first error other than io.EOF.
func (in *InputBuffer) Feed(r io.Reader) error {
	var b [512]byte
	var err error
	for err == nil {
		var n int
		n, err = r.Read(b[:])
		if n > 0 {
			if _, werr := in.Write(b[:n]); werr != nil {
				return werr
			}
		}
	}
	cerr := in.Close()
	if err != io.EOF {
		return errors.Wrap(err, "input feed")
	}
	return cerr
}

// newByteReader returns either r if it implements io.ByteReader or wraps it up
// into a bufio.Reader.
func newByteReader(r io.Reader) io.ByteReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.ByteReader:
		return rr
	default:
		return bufio.NewReader(r)
	}
}

// getChar reads one byte from the input. It returns EOF at the end of input
// and for an instance without input.
func (i *Instance) getChar() (Cell, error) {
	if i.input == nil {
		return EOF, nil
	}
	// anything written so far must be visible before we block.
	if f, ok := i.output.(flusher); ok {
		if err := f.Flush(); err != nil {
			return 0, errors.Wrap(err, "output flush")
		}
	}
	c, err := i.input.ReadByte()
	if err != nil {
		if err == io.EOF {
			return EOF, nil
		}
		return 0, errors.Wrap(err, "input read")
	}
	return Cell(c), nil
}

// getNumber reads a line from the input and parses it as a decimal number. A
// '\r' ends the line and the byte following it is discarded.
func (i *Instance) getNumber() (Cell, error) {
	var token []byte
	for {
		c, err := i.getChar()
		if err != nil {
			return 0, err
		}
		if c == EOF || c == '\n' {
			break
		}
		if c == '\r' {
			if _, err = i.getChar(); err != nil {
				return 0, err
			}
			break
		}
		token = append(token, byte(c))
	}
	if len(token) == 0 {
		return 0, &InvalidNumberError{string(token)}
	}
	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, &InvalidNumberError{string(token)}
		}
	}
	n, err := strconv.ParseInt(string(token), 10, 64)
	if err != nil {
		return 0, &InvalidNumberError{string(token)}
	}
	return Cell(n), nil
}

func (i *Instance) putChar(v Cell) error {
	if i.output == nil {
		return nil
	}
	_, err := i.output.Write([]byte{byte(v)})
	return errors.Wrap(err, "output write")
}

func (i *Instance) putNumber(v Cell) error {
	if i.output == nil {
		return nil
	}
	_, err := io.WriteString(i.output, strconv.FormatInt(int64(v), 10))
	return errors.Wrap(err, "output write")
}

// closeOutput flushes and closes the output.
func (i *Instance) closeOutput() error {
	var err error
	if f, ok := i.output.(flusher); ok {
		err = errors.Wrap(f.Flush(), "output flush")
	}
	if c, ok := i.output.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = errors.Wrap(cerr, "output close")
		}
	}
	return err
}
