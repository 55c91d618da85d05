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
package io_test

import (
	"testing"

	"github.com/lyn-lang/go-lyn/pkg/value"
	"github.com/lyn-lang/go-lyn/pkg/vm/io"
)

func TestStoreConsume(t *testing.T) {
	store := io.NewStore()
	id := store.Allocate(value.Int(5))
	//
	contents, fault := store.Consume(id)
	//
	if fault != nil {
		t.Fatal(fault)
	}
	//
	if contents != value.Int(5) {
		t.Errorf("expected 5, got %s", contents.String())
	}
	//
	if !store.IsConsumed(id) {
		t.Error("entry not flagged as consumed")
	}
	//
	if store.Unconsumed() != 0 {
		t.Errorf("expected 0 unconsumed, got %d", store.Unconsumed())
	}
}

func TestStoreDoubleConsumption(t *testing.T) {
	store := io.NewStore()
	id := store.Allocate(value.Int(5))
	//
	if _, fault := store.Consume(id); fault != nil {
		t.Fatal(fault)
	}
	//
	if _, fault := store.Consume(id); fault == nil {
		t.Fatal("second consumption accepted")
	} else if fault.Code != io.DoubleConsumption {
		t.Errorf("expected DoubleConsumption, got %s", fault.Code)
	}
}

func TestStoreDiscard(t *testing.T) {
	store := io.NewStore()
	id := store.Allocate(value.Int(5))
	//
	if fault := store.Discard(id); fault != nil {
		t.Fatal(fault)
	}
	// Discarding counts as the entry's one consumption.
	if _, fault := store.Consume(id); fault == nil {
		t.Fatal("consumption after discard accepted")
	} else if fault.Code != io.DoubleConsumption {
		t.Errorf("expected DoubleConsumption, got %s", fault.Code)
	}
	//
	if store.Unconsumed() != 0 {
		t.Errorf("expected 0 unconsumed, got %d", store.Unconsumed())
	}
}

func TestStoreForeignHandle(t *testing.T) {
	var (
		store   = io.NewStore()
		foreign = io.NewStore()
	)
	//
	id := foreign.Allocate(value.Int(5))
	//
	if _, fault := store.Consume(id); fault == nil {
		t.Fatal("foreign handle accepted")
	} else if fault.Code != io.TypeMismatch {
		t.Errorf("expected TypeMismatch, got %s", fault.Code)
	}
}

func TestStoreClone(t *testing.T) {
	store := io.NewStore()
	id := store.Allocate(value.Int(5))
	//
	fork := store.Clone()
	//
	if _, fault := fork.Consume(id); fault != nil {
		t.Fatal(fault)
	}
	// The original must be untouched by the fork's consumption.
	if store.Unconsumed() != 1 {
		t.Errorf("expected 1 unconsumed in original, got %d", store.Unconsumed())
	}
	//
	if _, fault := store.Consume(id); fault != nil {
		t.Fatal(fault)
	}
}

func TestStoreUnconsumedAcrossWords(t *testing.T) {
	store := io.NewStore()
	ids := make([]value.ResourceId, 100)
	// Exceed one bitset word.
	for i := range ids {
		ids[i] = store.Allocate(value.Int(int64(i)))
	}
	//
	for i, id := range ids {
		if i%3 == 0 {
			if _, fault := store.Consume(id); fault != nil {
				t.Fatal(fault)
			}
		}
	}
	//
	if store.Unconsumed() != 66 {
		t.Errorf("expected 66 unconsumed, got %d", store.Unconsumed())
	}
}
