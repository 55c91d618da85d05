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
package value

import (
	"bytes"
	"fmt"
)

// Value represents any machine value.  Values are plain immutable data and
// can be freely shared between registers, the resource store and programs;
// only Handle carries a linear obligation, and that obligation lives in the
// resource store rather than in the value itself.
type Value interface {
	// Encode appends the canonical encoding of this value to a given buffer.
	// The encoding is deterministic, total and platform independent.
	encode(buf *bytes.Buffer)
	// Produce a suitable string representation of this value.  This is
	// primarily used for debugging and diagnostics.
	String() string
}

// Side distinguishes the two alternatives of a sum value.
type Side uint8

const (
	// LEFT identifies the left alternative of a sum.
	LEFT Side = iota
	// RIGHT identifies the right alternative of a sum.
	RIGHT
)

func (s Side) String() string {
	if s == LEFT {
		return "left"
	}
	//
	return "right"
}

// Unit is the nullary value.
type Unit struct{}

// Bool is a boolean value.
type Bool bool

// Int is a 64-bit signed machine integer.
type Int int64

// Symbol is an interned piece of text.  Symbols name the machine intrinsics
// and otherwise act as plain atoms.
type Symbol string

// Pair is the tensor combinator, holding exactly two component values.
type Pair struct {
	Fst Value
	Snd Value
}

// Sum is a tagged choice between two alternatives.
type Sum struct {
	Side  Side
	Inner Value
}

// Label is a code offset within a program, used as the target of a function
// application.  Prior to linking, a label holds a symbolic label index rather
// than an absolute offset.
type Label uint

// Handle is an opaque reference to an entry in the resource store.
// Consuming it yields the stored value and invalidates the handle.
type Handle struct {
	Id ResourceId
}

// Effect is a request destined for the external effect collaborator,
// comprising a tag naming the effect and an arbitrary payload.
type Effect struct {
	Tag     string
	Payload Value
}

func (v Unit) String() string {
	return "()"
}

func (v Bool) String() string {
	return fmt.Sprintf("%t", bool(v))
}

func (v Int) String() string {
	return fmt.Sprintf("%d", int64(v))
}

func (v Symbol) String() string {
	return fmt.Sprintf("'%s", string(v))
}

func (v Pair) String() string {
	return fmt.Sprintf("(%s . %s)", v.Fst.String(), v.Snd.String())
}

func (v Sum) String() string {
	return fmt.Sprintf("%s(%s)", v.Side.String(), v.Inner.String())
}

func (v Label) String() string {
	return fmt.Sprintf("@%d", uint(v))
}

func (v Handle) String() string {
	return fmt.Sprintf("#%s", v.Id.String())
}

func (v Effect) String() string {
	return fmt.Sprintf("!%s(%s)", v.Tag, v.Payload.String())
}

// TypeName returns a short name describing the runtime type of a given value,
// as used in type mismatch diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Symbol:
		return "symbol"
	case Pair:
		return "pair"
	case Sum:
		return "sum"
	case Label:
		return "label"
	case Handle:
		return "handle"
	case Effect:
		return "effect"
	default:
		panic(fmt.Sprintf("unknown value %v", v))
	}
}

// SameType checks whether two values carry the same runtime type tag.  The
// comparison is shallow: pair components and sum payloads are not compared,
// and the two alternatives of a sum are the same type regardless of side.
func SameType(lhs Value, rhs Value) bool {
	return TypeName(lhs) == TypeName(rhs)
}
