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
package insn

import (
	"bytes"
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Apply applies the function value held in Fn to the argument held in Arg.
// The argument register is consumed; the function register is not (the
// checker is responsible for ensuring closures over linear captures are
// themselves used linearly).
//
// Callable values are: a label (user-defined function), a pair of a label
// and its moved-in capture record (closure), an intrinsic symbol, and a pair
// of an intrinsic symbol and its first argument (partial intrinsic).  User
// functions push a frame and jump; intrinsics compute inline.
type Apply struct {
	Fn  io.RegisterId
	Arg io.RegisterId
	Out io.RegisterId
}

// Execute this instruction against a given machine state.
func (p *Apply) Execute(state *io.State) (uint, *io.Fault) {
	fn, err := state.Peek(p.Fn)
	//
	if err != nil {
		return 0, err
	}
	//
	arg, err := state.Read(p.Arg)
	//
	if err != nil {
		return 0, err
	}
	//
	switch f := fn.(type) {
	case value.Label:
		return p.enter(state, uint(f), arg, value.Unit{})
	case value.Symbol:
		return p.inline(state, func() (value.Value, *io.Fault) {
			return applyIntrinsic(state, f, arg)
		})
	case value.Pair:
		switch g := f.Fst.(type) {
		case value.Label:
			return p.enter(state, uint(g), arg, f.Snd)
		case value.Symbol:
			return p.inline(state, func() (value.Value, *io.Fault) {
				return applyIntrinsic2(g, f.Snd, arg)
			})
		}
	}
	//
	return 0, io.Faultf(io.TypeMismatch, "%s value is not callable", value.TypeName(fn))
}

// Enter a user-defined function: save the return point, establish the
// calling convention registers and jump to the function's label.
func (p *Apply) enter(state *io.State, target uint, arg value.Value, env value.Value) (uint, *io.Fault) {
	state.Frames.Push(io.Frame{ReturnPc: state.Next(), Out: p.Out})
	state.Write(io.ARG, arg)
	state.Write(io.ENV, env)
	//
	return target, nil
}

func (p *Apply) inline(state *io.State, apply func() (value.Value, *io.Fault)) (uint, *io.Fault) {
	val, err := apply()
	//
	if err != nil {
		return 0, err
	}
	//
	state.Write(p.Out, val)
	//
	return state.Next(), nil
}

// RegistersRead returns the set of registers read by this instruction.
func (p *Apply) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Fn, p.Arg}
}

// RegistersWritten returns the set of registers written by this instruction.
func (p *Apply) RegistersWritten() []io.RegisterId {
	return []io.RegisterId{p.Out, io.ARG, io.ENV}
}

// Relocate resolves any symbolic label operands into absolute offsets.
func (p *Apply) Relocate(labels []uint) {
	// Function addresses arrive via constant moves; nothing to do here.
}

// Validate that this instruction is well-formed.
func (p *Apply) Validate(nregs uint, ncode uint) error {
	for _, reg := range []io.RegisterId{p.Fn, p.Arg, p.Out} {
		if reg >= nregs {
			return fmt.Errorf("apply register r%d out of range", reg)
		}
	}
	//
	return nil
}

// Encode appends the canonical encoding of this instruction.
func (p *Apply) Encode(buf *bytes.Buffer) {
	encodeOperands(buf, opApply, p.Fn, p.Arg, p.Out)
}

func (p *Apply) String(fn io.RegisterMap) string {
	return fmt.Sprintf("app %s, %s, %s", fn.Name(p.Out), fn.Name(p.Fn), fn.Name(p.Arg))
}
