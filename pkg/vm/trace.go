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
	"github.com/lyn-lang/go-lyn/pkg/vm/insn"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Tracer observes machine execution one instruction at a time.  The trace of
// a run is the artifact later consumed by the proof-circuit and replay
// collaborators, so tracers must not mutate the state they are shown.
type Tracer interface {
	// Step is invoked immediately before the instruction at pc executes.
	Step(pc uint, instruction insn.Instruction, state *io.State)
}

// TraceEntry records one executed instruction for replay.
type TraceEntry struct {
	// Offset of the executed instruction.
	Pc uint
	// Disassembly of the executed instruction.
	Disassembly string
}

// Recorder is a Tracer accumulating the full instruction trace of a run.
type Recorder struct {
	names   io.RegisterMap
	entries []TraceEntry
}

// NewRecorder constructs a trace recorder rendering registers with a given
// map.
func NewRecorder(names io.RegisterMap) *Recorder {
	return &Recorder{names: names}
}

// Step is invoked immediately before the instruction at pc executes.
func (p *Recorder) Step(pc uint, instruction insn.Instruction, state *io.State) {
	p.entries = append(p.entries, TraceEntry{pc, instruction.String(p.names)})
}

// Entries returns the trace recorded so far.
func (p *Recorder) Entries() []TraceEntry {
	return p.entries
}
