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
	"fmt"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Add is the sum of two integer expressions.  Arithmetic wraps at 64 bits,
// keeping evaluation total and replay deterministic.
type Add struct {
	Lhs Expr
	Rhs Expr
}

// Sub is the difference of two integer expressions.
type Sub struct {
	Lhs Expr
	Rhs Expr
}

// Mul is the product of two integer expressions.
type Mul struct {
	Lhs Expr
	Rhs Expr
}

// Eval evaluates this expression against a given machine state.
func (p *Add) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalArith(p.Lhs, p.Rhs, state, func(l, r int64) int64 { return l + r })
}

// Eval evaluates this expression against a given machine state.
func (p *Sub) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalArith(p.Lhs, p.Rhs, state, func(l, r int64) int64 { return l - r })
}

// Eval evaluates this expression against a given machine state.
func (p *Mul) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalArith(p.Lhs, p.Rhs, state, func(l, r int64) int64 { return l * r })
}

// RegistersRead returns the set of registers read by this expression.
func (p *Add) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Sub) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Mul) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

func (p *Add) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s + %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Sub) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s - %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Mul) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s * %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func evalArith(lhs Expr, rhs Expr, state *io.State, op func(int64, int64) int64) (value.Value, *io.Fault) {
	l, err := EvalInt(lhs, state)
	//
	if err != nil {
		return nil, err
	}
	//
	r, err := EvalInt(rhs, state)
	//
	if err != nil {
		return nil, err
	}
	//
	return value.Int(op(l, r)), nil
}
