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

// RegAccess reads the current value of a given register.  The read is
// non-consuming: constraints observe registers without invalidating them.
type RegAccess struct {
	Register io.RegisterId
}

// Eval evaluates this expression against a given machine state.
func (p *RegAccess) Eval(state *io.State) (value.Value, *io.Fault) {
	return state.Peek(p.Register)
}

// RegistersRead returns the set of registers read by this expression.
func (p *RegAccess) RegistersRead() []io.RegisterId {
	return []io.RegisterId{p.Register}
}

func (p *RegAccess) String(fn io.RegisterMap) string {
	return fn.Name(p.Register)
}
