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
package compiler

import "errors"

// ErrUnknownLabel indicates the source tree referenced a function which does
// not resolve to any label.  This is a compile-time-only error class,
// distinct from linearity violations: a checker-accepted tree can still fail
// here.
var ErrUnknownLabel = errors.New("unknown label")

// ErrInvalidJump indicates a lowered jump target falls outside the emitted
// instruction stream.  Raised by program validation during sealing.
var ErrInvalidJump = errors.New("invalid jump")
