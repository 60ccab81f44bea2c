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
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

// operand returns the value of the cell at addr, or 0 if addr is past the end
// of memory.
func (i *Instance) operand(addr int) Cell {
	if addr < len(i.Mem) {
		return i.Mem[addr]
	}
	return 0
}

// step executes the instruction at PC. It returns true if execution must stop
// after this instruction.
func (i *Instance) step() (exit bool, err error) {
	if i.Ptr < 0 || i.Ptr >= len(i.Mem) {
		return true, &OutOfBoundsError{i.Ptr, len(i.Mem)}
	}
	ins := i.prog.Code[i.PC]
	if i.log != nil && i.log.AllowLevel(commonlog.Debug) {
		i.log.Debugf("% 6d\t%-16v\tptr: %d\tcell: %d", i.PC, ins, i.Ptr, i.Mem[i.Ptr])
	}
	i.insCount++
	switch ins.Op {
	case OpNop:
	case OpGetChar:
		v, err := i.getChar()
		if err != nil {
			return true, err
		}
		i.Mem[i.Ptr] = v
	case OpPutChar:
		if err = i.putChar(i.Mem[i.Ptr]); err != nil {
			return true, err
		}
	case OpGetNumber:
		v, err := i.getNumber()
		if err != nil {
			return true, err
		}
		i.Mem[i.Ptr] = v
	case OpPutNumber:
		if err = i.putNumber(i.Mem[i.Ptr]); err != nil {
			return true, err
		}
	case OpIncrement:
		i.Mem[i.Ptr]++
	case OpDecrement:
		i.Mem[i.Ptr]--
	case OpZeroOut:
		i.Mem[i.Ptr] = 0
	case OpNegate:
		i.Mem[i.Ptr] = -i.Mem[i.Ptr]
	case OpAdd:
		i.Mem[i.Ptr] = i.operand(i.Ptr+1) + i.operand(i.Ptr+2)
	case OpSubtract:
		i.Mem[i.Ptr] = i.operand(i.Ptr+1) - i.operand(i.Ptr+2)
	case OpMultiply:
		i.Mem[i.Ptr] = i.operand(i.Ptr+1) * i.operand(i.Ptr+2)
	case OpDivide:
		lhs, rhs := i.operand(i.Ptr+1), i.operand(i.Ptr+2)
		if rhs == 0 {
			return true, ErrDivisionByZero
		}
		// DIV stores the non-negative remainder, not the quotient.
		i.Mem[i.Ptr] = ((lhs % rhs) + rhs) % rhs
	case OpSetPointer:
		i.Ptr = ins.Arg
	case OpJumpIfPositive:
		if i.Mem[i.Ptr] > 0 {
			i.PC = i.prog.Labels[ins.Label]
			return false, nil
		}
	case OpJumpIfZero:
		if i.Mem[i.Ptr] == 0 {
			i.PC = i.prog.Labels[ins.Label]
			return false, nil
		}
	case OpExit:
		return true, nil
	default:
		return true, errors.Errorf("invalid opcode %v", ins.Op)
	}
	i.PC++
	return false, nil
}

// end moves the instance to the Ended state and closes the output exactly
// once.
func (i *Instance) end(err error) error {
	i.state = Ended
	if err != nil {
		err = errors.Wrapf(err, "pc %d", i.PC)
	}
	if cerr := i.closeOutput(); err == nil {
		err = cerr
	}
	return err
}

// exec runs a single step and recovers from runtime panics.
func (i *Instance) exec() (exit bool, err error) {
	defer func() {
		if e := recover(); e != nil {
			exit, err = true, errors.Errorf("%v", e)
		}
	}()
	return i.step()
}

// Step executes a single instruction. Step blocks if the instruction reads from
// the input and no input is available yet.
//
// When the program ends, either because the PC moved past the last
// instruction, an EXIT instruction or an error, the instance state is set to
// Ended and the output is closed. Any subsequent call returns ErrEnded.
func (i *Instance) Step() error {
	if i.state == Ended {
		return ErrEnded
	}
	if i.PC >= len(i.prog.Code) {
		return i.end(nil)
	}
	exit, err := i.exec()
	if exit || err != nil || i.PC >= len(i.prog.Code) {
		return i.end(err)
	}
	return nil
}

// Run starts execution of the VM until the end of the program. If an error
// occurs, the PC will point to the instruction that triggered the error. Use
// errors.Cause to get the underlying error value (like ErrDivisionByZero).
//
// Run returns ErrEnded if called on an instance that has already ended.
func (i *Instance) Run() error {
	if i.state == Ended {
		return ErrEnded
	}
	for i.state != Ended {
		if err := i.Step(); err != nil {
			return err
		}
	}
	return nil
}
