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
package value

import (
	"encoding/binary"
	"fmt"
)

// ResourceId uniquely identifies an entry in the resource store.  The index
// locates the entry within the store's arena, whilst the digest binds the
// identifier to the stored value and the allocation at which it was minted.
// Identifiers are never reused, even after the entry is consumed.
type ResourceId struct {
	// Position of the entry within the arena.
	Index uint32
	// Content-derived identity, covering both the allocated value and the
	// allocation nonce.
	Digest Digest
}

// MintResourceId mints the identifier for the nth allocation of a given
// value within one machine instance.  Minting is deterministic: the same
// value allocated at the same position always yields the same identifier.
func MintResourceId(index uint32, contents Value) ResourceId {
	var nonce [8]byte
	//
	binary.BigEndian.PutUint64(nonce[:], uint64(index))
	//
	bs := append(Encode(contents), nonce[:]...)
	//
	return ResourceId{index, HashBytes(bs)}
}

func (r ResourceId) String() string {
	return fmt.Sprintf("%d:%.8s", r.Index, r.Digest.Hex())
}
