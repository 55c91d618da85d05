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
package io

import (
	"math/bits"
	"slices"

	"github.com/lyn-lang/go-lyn/pkg/value"
)

// Store is the linear resource store: a dense, append-only arena of values
// with a parallel consumed bitset.  Entries are born on allocate and die on
// consume; the value slot is never physically erased, only flagged, so that
// diagnostics and replay can still observe it.  There is deliberately no
// read-without-consuming operation: inspecting a resource's contents always
// costs the resource, forcing explicit re-allocation for continued use.
//
// A store is owned exclusively by one machine instance.  Forking an instance
// must go through Clone, never by aliasing.
type Store struct {
	entries  []value.Value
	ids      []value.ResourceId
	consumed bitset
}

// NewStore constructs a fresh, empty resource store.
func NewStore() *Store {
	return &Store{}
}

// Allocate creates a fresh entry holding a given value, returning its newly
// minted identifier.  Allocation always succeeds and identifiers are never
// reused.
func (p *Store) Allocate(contents value.Value) value.ResourceId {
	id := value.MintResourceId(uint32(len(p.entries)), contents)
	//
	p.entries = append(p.entries, contents)
	p.ids = append(p.ids, id)
	//
	return id
}

// Consume marks the entry identified by a given identifier as consumed,
// returning the stored value.  Consuming an already-consumed entry is a
// DoubleConsumption fault.
func (p *Store) Consume(id value.ResourceId) (value.Value, *Fault) {
	if err := p.lookup(id); err != nil {
		return nil, err
	} else if p.consumed.Get(uint(id.Index)) {
		return nil, Faultf(DoubleConsumption, "resource %s consumed twice", id)
	}
	//
	p.consumed.Set(uint(id.Index))
	//
	return p.entries[id.Index], nil
}

// Discard marks the entry identified by a given identifier as consumed
// without yielding its value.  This is the observable no-op consumption used
// to preserve conservation accounting when a resource becomes unreachable
// (e.g. the unchosen branch of a select).
func (p *Store) Discard(id value.ResourceId) *Fault {
	if err := p.lookup(id); err != nil {
		return err
	} else if p.consumed.Get(uint(id.Index)) {
		return Faultf(DoubleConsumption, "resource %s discarded after consumption", id)
	}
	//
	p.consumed.Set(uint(id.Index))
	//
	return nil
}

// IsConsumed checks whether the entry identified by a given identifier has
// been consumed.
func (p *Store) IsConsumed(id value.ResourceId) bool {
	return p.consumed.Get(uint(id.Index))
}

// Len returns the total number of entries ever allocated in this store.
func (p *Store) Len() uint {
	return uint(len(p.entries))
}

// Unconsumed returns the number of entries which are still live.  A
// conservation-respecting program terminates with zero.
func (p *Store) Unconsumed() uint {
	count := p.Len()
	//
	for _, w := range p.consumed.words {
		count -= uint(bits.OnesCount64(w))
	}
	//
	return count
}

// Clone creates a true copy of this store, ensuring no aliasing between the
// two.  Stored values are immutable and safely shared.
func (p *Store) Clone() *Store {
	return &Store{
		entries:  slices.Clone(p.entries),
		ids:      slices.Clone(p.ids),
		consumed: p.consumed.Clone(),
	}
}

// Snapshot captures the current store contents for fault diagnostics.
func (p *Store) Snapshot() []ResourceSnapshot {
	snapshot := make([]ResourceSnapshot, len(p.entries))
	//
	for i := range p.entries {
		snapshot[i] = ResourceSnapshot{
			Id:       p.ids[i].String(),
			Consumed: p.consumed.Get(uint(i)),
			Contents: p.entries[i].String(),
		}
	}
	//
	return snapshot
}

// A handle minted by a different machine instance (or forged) never
// identifies an entry here; that is a type error rather than a linearity
// error.
func (p *Store) lookup(id value.ResourceId) *Fault {
	if uint(id.Index) >= p.Len() || p.ids[id.Index] != id {
		return Faultf(TypeMismatch, "handle %s does not identify a resource of this store", id)
	}
	//
	return nil
}

// bitset is a straightforward set of unsigned integers implemented as an
// array of bits, backing the store's consumed flags.
type bitset struct {
	words []uint64
}

// Set a given bit within this bitset, extending as necessary.
func (p *bitset) Set(index uint) {
	word, bit := index/64, index%64
	//
	for uint(len(p.words)) <= word {
		p.words = append(p.words, 0)
	}
	//
	p.words[word] |= uint64(1) << bit
}

// Get a given bit within this bitset.
func (p *bitset) Get(index uint) bool {
	word, bit := index/64, index%64
	//
	if uint(len(p.words)) <= word {
		return false
	}
	//
	return p.words[word]&(uint64(1)<<bit) != 0
}

// Clone creates a true copy of this bitset.
func (p *bitset) Clone() bitset {
	return bitset{slices.Clone(p.words)}
}
