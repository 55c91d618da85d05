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
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
)

// RegisterId identifies a register within the register file.  Registers are
// dense indices; their names live in the enclosing program's register map,
// not in machine state.
type RegisterId = uint

// Reserved registers making up the machine's calling convention.  On entry
// to a function, ARG holds the (moved-in) argument and ENV holds the
// closure's capture record, if any.  User registers are allocated from
// FIRST_USER upwards.
const (
	ARG RegisterId = iota
	ENV
	FIRST_USER
)

// Register describes a single register slot.  At present this is just its
// name, retained for disassembly and fault snapshots.
type Register struct {
	Name string
}

// RegisterMap maps register identifiers to their descriptions.
type RegisterMap []Register

// Name returns a printable name for a given register.
func (p RegisterMap) Name(reg RegisterId) string {
	if reg < uint(len(p)) {
		return p[reg].Name
	}
	// Fallback for maps built before allocation completed.
	return fmt.Sprintf("r%d", reg)
}

// RegisterFile is the machine's mutable register state: one single-value
// slot per register, each of which is either valid (holding a value) or
// invalidated.  Consuming operations invalidate the slot they read; a
// subsequent read without an intervening write is a UseAfterMove fault.
type RegisterFile struct {
	values []value.Value
	valid  []bool
}

// NewRegisterFile constructs a fresh register file with a given number of
// slots, all initially invalidated.
func NewRegisterFile(n uint) *RegisterFile {
	return &RegisterFile{
		values: make([]value.Value, n),
		valid:  make([]bool, n),
	}
}

// Len returns the number of slots in this register file.
func (p *RegisterFile) Len() uint {
	return uint(len(p.values))
}

// Write a given value into a given register, making it valid.
func (p *RegisterFile) Write(reg RegisterId, val value.Value) {
	p.values[reg] = val
	p.valid[reg] = true
}

// Read the value held in a given register and invalidate the register.  This
// is the consuming read used by move, consume, apply (argument), match
// (scrutinee) and select (chosen source).
func (p *RegisterFile) Read(reg RegisterId, name string) (value.Value, *Fault) {
	if !p.valid[reg] {
		return nil, Faultf(UseAfterMove, "register %s read after move", name)
	}
	//
	p.valid[reg] = false
	//
	return p.values[reg], nil
}

// Peek at the value held in a given register without invalidating it.  This
// is the non-consuming read used by check, perform and the function operand
// of apply.
func (p *RegisterFile) Peek(reg RegisterId, name string) (value.Value, *Fault) {
	if !p.valid[reg] {
		return nil, Faultf(UseAfterMove, "register %s read after move", name)
	}
	//
	return p.values[reg], nil
}

// IsValid checks whether or not a given register currently holds a value.
func (p *RegisterFile) IsValid(reg RegisterId) bool {
	return p.valid[reg]
}

// Clone creates a true copy of this register file, ensuring no aliasing
// between the two.  Values themselves are immutable and safely shared.
func (p *RegisterFile) Clone() *RegisterFile {
	values := make([]value.Value, len(p.values))
	valid := make([]bool, len(p.valid))
	//
	copy(values, p.values)
	copy(valid, p.valid)
	//
	return &RegisterFile{values, valid}
}

// Snapshot captures the current register contents for fault diagnostics.
func (p *RegisterFile) Snapshot(names RegisterMap) []RegisterSnapshot {
	snapshot := make([]RegisterSnapshot, len(p.values))
	//
	for i := range p.values {
		snapshot[i].Name = names.Name(uint(i))
		snapshot[i].Valid = p.valid[i]
		//
		if p.valid[i] {
			snapshot[i].Contents = p.values[i].String()
		}
	}
	//
	return snapshot
}
