// Copyright 2018 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package license

import (
	"fmt"

	"github.com/licensescan/licensescan/internal/sets"
)

// LicenseType identifies which kind of text within a LicenseEntry a Match
// came from.
type LicenseType int

const (
	// LicenseTypeOriginal is the canonical text of a license.
	LicenseTypeOriginal LicenseType = iota
	// LicenseTypeHeader is a short-form license header. A license may have
	// more than one on file.
	LicenseTypeHeader
	// LicenseTypeAlternate is an alternately formatted rendition of a
	// license's text, not a variant with different legal meaning.
	LicenseTypeAlternate
)

func (k LicenseType) String() string {
	switch k {
	case LicenseTypeOriginal:
		return "original text"
	case LicenseTypeHeader:
		return "license header"
	case LicenseTypeAlternate:
		return "alternate text"
	default:
		return "unknown"
	}
}

// LicenseEntry holds everything the Store knows about a single named
// license: its canonical text plus any aliases, headers and alternates.
type LicenseEntry struct {
	Original   TextData   `msgpack:"original"`
	Aliases    []string   `msgpack:"aliases"`
	Headers    []TextData `msgpack:"headers"`
	Alternates []TextData `msgpack:"alternates"`
}

func newLicenseEntry(original TextData) *LicenseEntry {
	return &LicenseEntry{Original: original}
}

// Store is a named collection of known licenses to match text against. Load
// one from a cache with StoreFromCache, or build one incrementally with
// AddLicense/AddVariant (as the spdx package does).
type Store struct {
	licenses map[string]*LicenseEntry
}

// NewStore returns an empty Store. Most callers will want StoreFromCache
// instead, since building a Store from text is comparatively slow.
func NewStore() *Store {
	return &Store{licenses: make(map[string]*LicenseEntry)}
}

// Len returns the number of licenses in the store, not counting headers,
// aliases or alternates.
func (s *Store) Len() int {
	return len(s.licenses)
}

// IsEmpty reports whether the store has no licenses.
func (s *Store) IsEmpty() bool {
	return len(s.licenses) == 0
}

// Licenses returns the names of every license in the store, sorted.
func (s *Store) Licenses() []string {
	names := sets.NewStringSet()
	for name := range s.licenses {
		names.Insert(name)
	}
	return names.Sorted()
}

// GetOriginal returns a license's canonical TextData by name.
func (s *Store) GetOriginal(name string) (*TextData, bool) {
	entry, ok := s.licenses[name]
	if !ok {
		return nil, false
	}
	return &entry.Original, true
}

// AddLicense adds a single license to the store. If a license of the same
// name already exists, it and all of its variants are replaced.
func (s *Store) AddLicense(name string, data TextData) {
	s.licenses[name] = newLicenseEntry(data)
}

// AddVariant adds a header or alternate-format rendition of an
// already-present license. It cannot be used to replace a license's
// canonical text.
func (s *Store) AddVariant(name string, kind LicenseType, data TextData) error {
	entry, ok := s.licenses[name]
	if !ok {
		return fmt.Errorf("add variant %q: %w", name, ErrUnknownLicense)
	}
	switch kind {
	case LicenseTypeAlternate:
		entry.Alternates = append(entry.Alternates, data)
	case LicenseTypeHeader:
		entry.Headers = append(entry.Headers, data)
	default:
		return fmt.Errorf("add variant %q: %w", name, ErrInvalidVariant)
	}
	return nil
}

// Aliases returns the list of alias names recorded for a license.
func (s *Store) Aliases(name string) ([]string, error) {
	entry, ok := s.licenses[name]
	if !ok {
		return nil, fmt.Errorf("aliases %q: %w", name, ErrUnknownLicense)
	}
	return entry.Aliases, nil
}

// SetAliases replaces the list of alias names recorded for a license.
func (s *Store) SetAliases(name string, aliases []string) error {
	entry, ok := s.licenses[name]
	if !ok {
		return fmt.Errorf("set aliases %q: %w", name, ErrUnknownLicense)
	}
	entry.Aliases = aliases
	return nil
}
