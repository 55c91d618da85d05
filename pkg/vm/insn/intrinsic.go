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
	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Names of the machine intrinsics.  The lowering compiler emits applications
// of these symbols to realise the structural source primitives; they are
// part of the machine's contract with the compiler, not surface syntax.
const (
	// IntrinsicPair pairs two values (curried; its partial application is
	// represented as a pair of the symbol and the first component).
	IntrinsicPair = value.Symbol("pair")
	// IntrinsicSplit eliminates a pair: the first component becomes the
	// result whilst the second is deposited in the ENV register.
	IntrinsicSplit = value.Symbol("split")
	// IntrinsicLeft injects a value into the left alternative of a sum.
	IntrinsicLeft = value.Symbol("left")
	// IntrinsicRight injects a value into the right alternative of a sum.
	IntrinsicRight = value.Symbol("right")
	// IntrinsicUnunit eliminates a unit value, faulting on anything else.
	IntrinsicUnunit = value.Symbol("ununit")
)

// Apply a unary intrinsic, or construct the partial application of a binary
// one.
func applyIntrinsic(state *io.State, name value.Symbol, arg value.Value) (value.Value, *io.Fault) {
	switch name {
	case IntrinsicPair:
		return value.Pair{Fst: name, Snd: arg}, nil
	case IntrinsicSplit:
		pair, ok := arg.(value.Pair)
		//
		if !ok {
			return nil, io.Faultf(io.TypeMismatch, "split applied to %s", value.TypeName(arg))
		}
		// Second component travels via the ENV register.
		state.Write(io.ENV, pair.Snd)
		//
		return pair.Fst, nil
	case IntrinsicLeft:
		return value.Sum{Side: value.LEFT, Inner: arg}, nil
	case IntrinsicRight:
		return value.Sum{Side: value.RIGHT, Inner: arg}, nil
	case IntrinsicUnunit:
		if _, ok := arg.(value.Unit); !ok {
			return nil, io.Faultf(io.TypeMismatch, "unit elimination applied to %s", value.TypeName(arg))
		}
		//
		return value.Unit{}, nil
	default:
		return nil, io.Faultf(io.TypeMismatch, "unknown intrinsic %s", name)
	}
}

// Saturate a partially applied binary intrinsic.
func applyIntrinsic2(name value.Symbol, fst value.Value, snd value.Value) (value.Value, *io.Fault) {
	if name == IntrinsicPair {
		return value.Pair{Fst: fst, Snd: snd}, nil
	}
	//
	return nil, io.Faultf(io.TypeMismatch, "intrinsic %s is not binary", name)
}
