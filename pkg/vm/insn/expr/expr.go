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
package expr

import (
	"bytes"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Expr is a constraint expression as evaluated by the check instruction.
// Evaluation observes machine state but never changes it: register reads are
// non-consuming, and no expression allocates or consumes resources.
type Expr interface {
	// Eval evaluates this expression against a given machine state.
	Eval(state *io.State) (value.Value, *io.Fault)
	// RegistersRead returns the set of registers read by this expression.
	RegistersRead() []io.RegisterId
	// Produce a suitable string representation of this expression.
	String(fn io.RegisterMap) string
}

// EvalInt evaluates an expression, requiring an integer result.
func EvalInt(e Expr, state *io.State) (int64, *io.Fault) {
	val, err := e.Eval(state)
	//
	if err != nil {
		return 0, err
	}
	//
	i, ok := val.(value.Int)
	//
	if !ok {
		return 0, io.Faultf(io.TypeMismatch, "constraint expected int, found %s", value.TypeName(val))
	}
	//
	return int64(i), nil
}

// EvalBool evaluates an expression, requiring a boolean result.
func EvalBool(e Expr, state *io.State) (bool, *io.Fault) {
	val, err := e.Eval(state)
	//
	if err != nil {
		return false, err
	}
	//
	b, ok := val.(value.Bool)
	//
	if !ok {
		return false, io.Faultf(io.TypeMismatch, "constraint expected bool, found %s", value.TypeName(val))
	}
	//
	return bool(b), nil
}

// Values are equal exactly when their canonical encodings are equal.
func equalValues(lhs value.Value, rhs value.Value) bool {
	return bytes.Equal(value.Encode(lhs), value.Encode(rhs))
}

func merge(lhs []io.RegisterId, rhs []io.RegisterId) []io.RegisterId {
	return append(lhs, rhs...)
}
