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

// Eq compares two expressions for structural equality.
type Eq struct {
	Lhs Expr
	Rhs Expr
}

// Lt is a strict integer less-than comparison.
type Lt struct {
	Lhs Expr
	Rhs Expr
}

// Leq is a non-strict integer less-than comparison.
type Leq struct {
	Lhs Expr
	Rhs Expr
}

// Eval evaluates this expression against a given machine state.
func (p *Eq) Eval(state *io.State) (value.Value, *io.Fault) {
	l, err := p.Lhs.Eval(state)
	//
	if err != nil {
		return nil, err
	}
	//
	r, err := p.Rhs.Eval(state)
	//
	if err != nil {
		return nil, err
	}
	//
	return value.Bool(equalValues(l, r)), nil
}

// Eval evaluates this expression against a given machine state.
func (p *Lt) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalCmp(p.Lhs, p.Rhs, state, func(l, r int64) bool { return l < r })
}

// Eval evaluates this expression against a given machine state.
func (p *Leq) Eval(state *io.State) (value.Value, *io.Fault) {
	return evalCmp(p.Lhs, p.Rhs, state, func(l, r int64) bool { return l <= r })
}

// RegistersRead returns the set of registers read by this expression.
func (p *Eq) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Lt) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

// RegistersRead returns the set of registers read by this expression.
func (p *Leq) RegistersRead() []io.RegisterId {
	return merge(p.Lhs.RegistersRead(), p.Rhs.RegistersRead())
}

func (p *Eq) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s == %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Lt) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s < %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func (p *Leq) String(fn io.RegisterMap) string {
	return fmt.Sprintf("(%s <= %s)", p.Lhs.String(fn), p.Rhs.String(fn))
}

func evalCmp(lhs Expr, rhs Expr, state *io.State, op func(int64, int64) bool) (value.Value, *io.Fault) {
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
	return value.Bool(op(l, r)), nil
}
