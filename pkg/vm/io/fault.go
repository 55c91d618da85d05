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
	"strings"
)

// FaultCode classifies the runtime fault taxonomy.  Every fault is fatal and
// unrecoverable within a single machine instance; retry or rollback policy
// belongs to the external caller.
type FaultCode uint8

const (
	// DoubleConsumption indicates a resource was consumed twice.
	DoubleConsumption FaultCode = iota
	// UseAfterMove indicates a register was read after a consuming read
	// invalidated it.
	UseAfterMove
	// TypeMismatch indicates an instruction was applied to a value of the
	// wrong runtime type.
	TypeMismatch
	// ConstraintViolation indicates a check instruction evaluated to false.
	ConstraintViolation
	// StackUnderflow indicates a return was executed with no frame to pop.
	StackUnderflow
	// Collaborator indicates an external collaborator (witness oracle or
	// effect handler) failed or was absent.
	Collaborator
)

func (c FaultCode) String() string {
	switch c {
	case DoubleConsumption:
		return "DoubleConsumption"
	case UseAfterMove:
		return "UseAfterMove"
	case TypeMismatch:
		return "TypeMismatch"
	case ConstraintViolation:
		return "ConstraintViolation"
	case StackUnderflow:
		return "StackUnderflow"
	case Collaborator:
		return "Collaborator"
	default:
		panic("unknown fault code")
	}
}

// RegisterSnapshot captures one register at the point a fault arose.
type RegisterSnapshot struct {
	Name     string
	Valid    bool
	Contents string
}

// ResourceSnapshot captures one resource store entry at the point a fault
// arose.
type ResourceSnapshot struct {
	Id       string
	Consumed bool
	Contents string
}

// Fault is the structured runtime error reported by the machine.  A fault is
// first raised by an instruction with just a code and message; the
// interpreter then annotates it with the offending instruction offset and a
// snapshot of register and resource-store state, sufficient for external
// diagnostics.
type Fault struct {
	// Classification of this fault.
	Code FaultCode
	// Human-readable description.
	Message string
	// Offset of the offending instruction.
	Pc uint
	// Disassembly of the offending instruction.
	Instruction string
	// Register file at the point of failure.
	Registers []RegisterSnapshot
	// Resource store at the point of failure.
	Resources []ResourceSnapshot
}

// Faultf constructs a new (unannotated) fault with a formatted message.
func Faultf(code FaultCode, format string, args ...any) *Fault {
	return &Fault{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (p *Fault) Error() string {
	return fmt.Sprintf("%s at pc=%d (%s): %s", p.Code, p.Pc, p.Instruction, p.Message)
}

// Report renders a multi-line diagnostic report of this fault, including the
// machine-state snapshots.
func (p *Fault) Report() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Error())
	builder.WriteString("\nregisters:\n")
	//
	for _, reg := range p.Registers {
		if reg.Valid {
			builder.WriteString(fmt.Sprintf("\t%s = %s\n", reg.Name, reg.Contents))
		} else {
			builder.WriteString(fmt.Sprintf("\t%s = <moved>\n", reg.Name))
		}
	}
	//
	builder.WriteString("resources:\n")
	//
	for _, res := range p.Resources {
		state := "live"
		if res.Consumed {
			state = "consumed"
		}
		//
		builder.WriteString(fmt.Sprintf("\t%s = %s (%s)\n", res.Id, res.Contents, state))
	}
	//
	return builder.String()
}
