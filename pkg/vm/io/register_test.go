// Copyright the go-lyn authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package io_test

import (
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

func TestRegisterReadInvalidates(t *testing.T) {
	regs := io.NewRegisterFile(4)
	regs.Write(2, value.Int(1))
	//
	if _, fault := regs.Read(2, "r2"); fault != nil {
		t.Fatal(fault)
	}
	//
	if _, fault := regs.Read(2, "r2"); fault == nil {
		t.Fatal("read after move accepted")
	} else if fault.Code != io.UseAfterMove {
		t.Errorf("expected UseAfterMove, got %s", fault.Code)
	}
}

func TestRegisterPeek(t *testing.T) {
	regs := io.NewRegisterFile(4)
	regs.Write(2, value.Int(1))
	//
	if _, fault := regs.Peek(2, "r2"); fault != nil {
		t.Fatal(fault)
	}
	// Peeking must leave the register valid.
	if !regs.IsValid(2) {
		t.Error("peek invalidated the register")
	}
}

func TestRegisterRewrite(t *testing.T) {
	regs := io.NewRegisterFile(4)
	regs.Write(2, value.Int(1))
	//
	if _, fault := regs.Read(2, "r2"); fault != nil {
		t.Fatal(fault)
	}
	// A write revalidates the slot.
	regs.Write(2, value.Int(2))
	//
	val, fault := regs.Read(2, "r2")
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if val != value.Int(2) {
		t.Errorf("expected 2, got %s", val.String())
	}
}

func TestRegisterInitiallyInvalid(t *testing.T) {
	regs := io.NewRegisterFile(4)
	//
	if _, fault := regs.Read(0, "r0"); fault == nil {
		t.Fatal("read of uninitialised register accepted")
	}
}

func TestRegisterClone(t *testing.T) {
	regs := io.NewRegisterFile(4)
	regs.Write(2, value.Int(1))
	//
	fork := regs.Clone()
	//
	if _, fault := fork.Read(2, "r2"); fault != nil {
		t.Fatal(fault)
	}
	//
	if !regs.IsValid(2) {
		t.Error("fork consumption leaked into the original")
	}
}

func TestCallStackPushPop(t *testing.T) {
	stack := io.NewCallStack()
	stack.Push(io.Frame{ReturnPc: 7, Out: 3})
	//
	frame, fault := stack.Pop()
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if frame.ReturnPc != 7 || frame.Out != 3 {
		t.Errorf("unexpected frame %v", frame)
	}
	//
	if !stack.IsEmpty() {
		t.Error("stack not empty after pop")
	}
}

func TestCallStackUnderflow(t *testing.T) {
	stack := io.NewCallStack()
	//
	if _, fault := stack.Pop(); fault == nil {
		t.Fatal("pop of empty stack accepted")
	} else if fault.Code != io.StackUnderflow {
		t.Errorf("expected StackUnderflow, got %s", fault.Code)
	}
}
