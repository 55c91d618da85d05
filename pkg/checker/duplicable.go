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
package checker

import "github.com/lyn-lang/go-lyn/pkg/ast"

// A duplicable expression can be evaluated any number of times without
// touching linear state: literals, references to non-linear let bindings,
// constructors over duplicable parts, and lambdas whose every capture is
// itself duplicable.  Lambda parameters are excluded even when non-linear,
// since they hold runtime values rather than re-evaluable initializers.
// Only duplicable expressions may initialise non-linear bindings.
func duplicable(n ast.Node, c *checker) bool {
	switch t := n.(type) {
	case *ast.Lit:
		return true
	case *ast.Var:
		return c.duplicableName(t.Name)
	case *ast.MakePair:
		return duplicable(t.Fst, c) && duplicable(t.Snd, c)
	case *ast.Inject:
		return duplicable(t.Inner, c)
	case *ast.Lambda:
		// Capture sets are recorded before initializers are classified, so
		// this sees the final set.
		for _, name := range t.Attributes().Captures {
			if !c.duplicableName(name) {
				return false
			}
		}
		//
		return true
	default:
		return false
	}
}

func (c *checker) duplicableName(name string) bool {
	index := c.lookup(name)
	//
	return index >= 0 && !c.env[index].linear && !c.env[index].param
}
