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
	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

// Const is a literal value embedded in a constraint.
type Const struct {
	Val value.Value
}

// Eval evaluates this expression against a given machine state.
func (p *Const) Eval(state *io.State) (value.Value, *io.Fault) {
	return p.Val, nil
}

// RegistersRead returns the set of registers read by this expression.
func (p *Const) RegistersRead() []io.RegisterId {
	return nil
}

func (p *Const) String(fn io.RegisterMap) string {
	return p.Val.String()
}
