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

import "slices"

// Frame is a saved return point, pushed by apply (for user-defined
// functions) and popped by return.  Out identifies the caller register which
// receives the callee's result.
type Frame struct {
	// Program counter to resume at.
	ReturnPc uint
	// Caller register receiving the result.
	Out RegisterId
}

// CallStack is a strict stack of call frames.  Frames are plain data, which
// is what makes checkpoint/restore by an external simulation collaborator
// possible without touching the interpreter's internals.
type CallStack struct {
	frames []Frame
}

// NewCallStack returns an empty call stack.
func NewCallStack() *CallStack {
	return &CallStack{}
}

// Len returns the number of frames on the stack.
func (p *CallStack) Len() uint {
	return uint(len(p.frames))
}

// IsEmpty checks whether or not there are frames on the stack.
func (p *CallStack) IsEmpty() bool {
	return len(p.frames) == 0
}

// Push a new frame onto the stack.
func (p *CallStack) Push(frame Frame) {
	p.frames = append(p.frames, frame)
}

// Pop the top frame off the stack.  Popping an empty stack is a
// StackUnderflow fault.
func (p *CallStack) Pop() (Frame, *Fault) {
	var n = len(p.frames)
	//
	if n == 0 {
		return Frame{}, Faultf(StackUnderflow, "return with empty call stack")
	}
	//
	frame := p.frames[n-1]
	p.frames = p.frames[:n-1]
	//
	return frame, nil
}

// Clone creates a true copy of this call stack.
func (p *CallStack) Clone() *CallStack {
	return &CallStack{slices.Clone(p.frames)}
}
