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
package vm

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Machine is one executing instance of a program: the program (shared,
// immutable) together with exclusively owned mutable state.  Execution is
// strictly single threaded and sequential; identical programs with identical
// collaborator responses always yield identical final states.
type Machine struct {
	program *Program
	state   *io.State
	tracer  Tracer
}

// NewMachine constructs a fresh machine instance for a given program, with a
// fresh register file and resource store.  Either collaborator may be nil,
// in which case the corresponding instruction faults if reached.
func NewMachine(program *Program, oracle io.Oracle, effects io.EffectHandler) *Machine {
	return &Machine{
		program: program,
		state:   io.NewState(program.Registers(), oracle, effects),
	}
}

// SetTracer attaches an execution tracer to this machine, receiving every
// step before it executes.
func (p *Machine) SetTracer(tracer Tracer) {
	p.tracer = tracer
}

// Program returns the (immutable) program this machine executes.
func (p *Machine) Program() *Program {
	return p.program
}

// State exposes the machine's raw state for external checkpointing.  Changes
// made through it affect subsequent execution.
func (p *Machine) State() *io.State {
	return p.state
}

// HasHalted checks whether or not this machine has halted.
func (p *Machine) HasHalted() bool {
	return p.state.Pc == io.RETURN
}

// Result returns the final result value of a halted machine.  By convention
// the final return delivers its value into the ARG register.
func (p *Machine) Result() (value.Value, *io.Fault) {
	return p.state.Peek(io.ARG)
}

// Step executes the single instruction at the current program counter.  Any
// fault halts the machine immediately and irrecoverably; the fault is
// annotated with the offending offset and full state snapshots.
func (p *Machine) Step() *io.Fault {
	var (
		pc          = p.state.Pc
		instruction = p.program.Instruction(pc)
	)
	//
	if p.tracer != nil {
		p.tracer.Step(pc, instruction, p.state)
	}
	//
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Tracef("pc=%04d %s", pc, instruction.String(p.program.Registers()))
	}
	//
	next, err := instruction.Execute(p.state)
	//
	if err != nil {
		return p.annotate(err, pc)
	}
	//
	p.state.Pc = next
	//
	return nil
}

// Execute at most n steps of this machine, returning the number of steps
// actually executed.  Fewer steps are executed if the machine halts or
// faults first.
func (p *Machine) Execute(nsteps uint) (uint, *io.Fault) {
	var step uint
	//
	for step < nsteps && !p.HasHalted() {
		if err := p.Step(); err != nil {
			return step, err
		}
		//
		step++
	}
	//
	return step, nil
}

// Run this machine to completion, returning the final result value.
func (p *Machine) Run() (value.Value, *io.Fault) {
	if _, err := p.Execute(math.MaxUint); err != nil {
		return nil, err
	}
	//
	return p.Result()
}

// Clone creates a true copy of this machine, deep-copying all mutable state
// whilst sharing the immutable program.  This is the sanctioned fork
// operation for simulation collaborators exploring divergent futures.
func (p *Machine) Clone() *Machine {
	return &Machine{
		program: p.program,
		state:   p.state.Clone(),
		tracer:  p.tracer,
	}
}

// Faults escape the machine fully annotated, such that external callers
// never need to reach back into (now suspect) machine state.
func (p *Machine) annotate(fault *io.Fault, pc uint) *io.Fault {
	fault.Pc = pc
	fault.Instruction = p.program.Instruction(pc).String(p.program.Registers())
	fault.Registers = p.state.Registers.Snapshot(p.program.Registers())
	fault.Resources = p.state.Store.Snapshot()
	// Poison the program counter so the machine cannot be resumed.
	p.state.Pc = io.RETURN
	//
	return fault
}
