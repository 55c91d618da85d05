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

// Package binfile defines the versioned JSON interchange formats: source
// trees arrive as "lyn/ast" documents produced by external frontends, and
// compiled programs are written back as "lyn/program" artifacts stamped with
// their content digest.  Every document opens with the same header, whose
// version is checked semantically: artifacts written by an older minor
// version of the same major remain readable.
package binfile

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// FormatVersion is stamped into every written artifact.
const FormatVersion = "1.0.0"

const (
	// FormatAst identifies source tree documents.
	FormatAst = "lyn/ast"
	// FormatProgram identifies compiled program artifacts.
	FormatProgram = "lyn/program"
)

// Header opens every interchange document.
type Header struct {
	Format  string `json:"format"`
	Version string `json:"version"`
}

// NewHeader constructs a header for the current format version.
func NewHeader(format string) Header {
	return Header{Format: format, Version: FormatVersion}
}

// compatible matches any version this reader understands.
var compatible = mustConstraint(fmt.Sprintf("^%s", FormatVersion))

// IsCompatible determines whether a document with this header can be read.
func (p *Header) IsCompatible(format string) error {
	if p.Format != format {
		return fmt.Errorf("document is %q, expected %q", p.Format, format)
	}
	//
	version, err := semver.NewVersion(p.Version)
	//
	if err != nil {
		return fmt.Errorf("malformed format version %q: %w", p.Version, err)
	}
	//
	if !compatible.Check(version) {
		return fmt.Errorf("incompatible document version %s, supported is %s", p.Version, compatible)
	}
	//
	return nil
}

// PeekFormat reads the format identifier of a raw document without decoding
// its payload, so callers can dispatch on the document kind.
func PeekFormat(data []byte) (string, error) {
	var header Header
	//
	if err := json.Unmarshal(data, &header); err != nil {
		return "", fmt.Errorf("malformed document: %w", err)
	}
	//
	return header.Format, nil
}

// Check the header of a raw document against an expected format, without
// decoding its payload.
func checkHeader(data []byte, format string) error {
	var header Header
	//
	if err := json.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("malformed document: %w", err)
	}
	//
	return header.IsCompatible(format)
}

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	//
	if err != nil {
		panic(err)
	}
	//
	return c
}
