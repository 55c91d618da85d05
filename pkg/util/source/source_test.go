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
package source_test

import (
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/util/source"
)

func TestSpan(t *testing.T) {
	span := source.NewSpan(3, 9)
	//
	if span.Start() != 3 || span.End() != 9 {
		t.Errorf("unexpected span %v", span)
	}
	//
	if span.Length() != 6 {
		t.Errorf("expected length 6, got %d", span.Length())
	}
}

func TestSyntaxError(t *testing.T) {
	err := source.ErrSyntaxf(source.NewSpan(3, 9), "binding %s is never consumed", "x")
	//
	if err.Message() != "binding x is never consumed" {
		t.Errorf("unexpected message %q", err.Message())
	}
	//
	if err.Error() != "3:9:binding x is never consumed" {
		t.Errorf("unexpected rendering %q", err.Error())
	}
}
