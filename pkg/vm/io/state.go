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
package io

import (
	"math"

	"github.com/lyn-lang/go-lyn/pkg/value"
)

// RETURN is the sentinel program counter signalling that the machine has
// halted.  The top-level sentinel frame returns here.
const RETURN = math.MaxUint

// Oracle is the external witness collaborator: a synchronous call with no
// arguments, invoked once per witness instruction.
type Oracle interface {
	Witness() (value.Value, error)
}

// EffectHandler is the external effect collaborator, to which perform
// instructions are synchronously delegated.
type EffectHandler interface {
	Perform(tag string, payload value.Value) (value.Value, error)
}

// State collects together all mutable machine state needed for executing a
// single instruction: the register file, the resource store, the call stack
// and the program counter, plus the two external collaborators.  One state
// is owned exclusively by one machine instance.
type State struct {
	// Program counter position.
	Pc uint
	// Register file for this machine instance.
	Registers *RegisterFile
	// Resource store for this machine instance.
	Store *Store
	// Call stack for this machine instance.
	Frames *CallStack
	// Register names, for disassembly and diagnostics.
	Map RegisterMap
	// External witness collaborator (may be nil).
	Oracle Oracle
	// External effect collaborator (may be nil).
	Effects EffectHandler
}

// NewState constructs a fresh machine state for a program with a given
// number of registers.  The top-level sentinel frame is pushed such that the
// final return halts the machine with its result in the ARG register.
func NewState(names RegisterMap, oracle Oracle, effects EffectHandler) *State {
	frames := NewCallStack()
	frames.Push(Frame{RETURN, ARG})
	//
	return &State{
		Pc:        0,
		Registers: NewRegisterFile(uint(len(names))),
		Store:     NewStore(),
		Frames:    frames,
		Map:       names,
		Oracle:    oracle,
		Effects:   effects,
	}
}

// Next returns the program counter for the following instruction.
func (p *State) Next() uint {
	return p.Pc + 1
}

// Read the value of a given register, invalidating it.
func (p *State) Read(reg RegisterId) (value.Value, *Fault) {
	return p.Registers.Read(reg, p.Map.Name(reg))
}

// Peek at the value of a given register without invalidating it.
func (p *State) Peek(reg RegisterId) (value.Value, *Fault) {
	return p.Registers.Peek(reg, p.Map.Name(reg))
}

// Write a given value into a given register.
func (p *State) Write(reg RegisterId, val value.Value) {
	p.Registers.Write(reg, val)
}

// Clone creates a true copy of this state, deep-copying the register file,
// resource store and call stack.  This is the only sanctioned way for a
// simulation collaborator to fork a machine instance; aliasing two live
// instances is disallowed by contract.
func (p *State) Clone() *State {
	return &State{
		Pc:        p.Pc,
		Registers: p.Registers.Clone(),
		Store:     p.Store.Clone(),
		Frames:    p.Frames.Clone(),
		Map:       p.Map,
		Oracle:    p.Oracle,
		Effects:   p.Effects,
	}
}
