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
	"errors"
	"testing"
)

func dummyAnalyzeStore() *Store {
	s := NewStore()
	s.AddLicense("license-1", NewTextData("aaaaa\nbbbbb\nccccc"))
	s.AddLicense("license-2", NewTextData("1234 5678 1234\n0000\n1010101010\n\n8888 9999"))
	return s
}

func TestStore_Analyze_Empty(t *testing.T) {
	s := NewStore()
	text := NewTextData("whatever")
	if _, err := s.Analyze(&text); !errors.Is(err, ErrNoMatch) {
		t.Errorf("Analyze() on empty store error = %v, want ErrNoMatch", err)
	}
}

func TestStore_Analyze_FindsBestMatch(t *testing.T) {
	s := dummyAnalyzeStore()
	text := NewTextData("aaaaa\nbbbbb\nccccc")

	match, err := s.Analyze(&text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if match.Name != "license-1" {
		t.Errorf("Analyze().Name = %q, want %q", match.Name, "license-1")
	}
	if match.LicenseType != LicenseTypeOriginal {
		t.Errorf("Analyze().LicenseType = %v, want Original", match.LicenseType)
	}
	if match.Score < 0.99 {
		t.Errorf("Analyze().Score = %v, want near 1", match.Score)
	}
}

func TestStore_Analyze_DeterministicTieBreak(t *testing.T) {
	s := NewStore()
	// Identical text filed under two different names: Analyze must always
	// return the same one regardless of scheduling.
	s.AddLicense("license-b", NewTextData("identical content here"))
	s.AddLicense("license-a", NewTextData("identical content here"))
	text := NewTextData("identical content here")

	for i := 0; i < 20; i++ {
		match, err := s.Analyze(&text)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if match.Name != "license-a" {
			t.Fatalf("Analyze() = %q, want %q (lexically first on tie)", match.Name, "license-a")
		}
	}
}

func TestStore_Analyze_PrefersHeaderOverAlternateOnTie(t *testing.T) {
	s := NewStore()
	s.AddLicense("license-1", NewTextData("unrelated"))
	if err := s.AddVariant("license-1", LicenseTypeAlternate, NewTextData("shared text")); err != nil {
		t.Fatalf("AddVariant(alternate) error = %v", err)
	}
	if err := s.AddVariant("license-1", LicenseTypeHeader, NewTextData("shared text")); err != nil {
		t.Fatalf("AddVariant(header) error = %v", err)
	}
	text := NewTextData("shared text")

	match, err := s.Analyze(&text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if match.LicenseType != LicenseTypeHeader {
		t.Errorf("Analyze().LicenseType = %v, want Header on tie with Alternate", match.LicenseType)
	}
}
