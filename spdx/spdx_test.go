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

package spdx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	license "github.com/licensescan/licensescan"
)

func TestLoad_BasicsAndAliasDetection(t *testing.T) {
	store := license.NewStore()
	if err := Load("testdata", store, true); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// MIT-0 has identical text to MIT in this fixture, so it should be
	// recorded as an alias rather than its own entry. GPL-1.0-old is
	// deprecated and should be skipped entirely.
	if diff := cmp.Diff([]string{"Apache-2.0", "MIT"}, store.Licenses()); diff != "" {
		t.Errorf("Licenses() mismatch (-want +got):\n%s", diff)
	}

	aliases, err := store.Aliases("MIT")
	if err != nil {
		t.Fatalf("Aliases(MIT) error = %v", err)
	}
	if diff := cmp.Diff([]string{"MIT-0"}, aliases); diff != "" {
		t.Errorf("Aliases(MIT) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_IncludeTextAsymmetry(t *testing.T) {
	storeWithText := license.NewStore()
	if err := Load("testdata", storeWithText, true); err != nil {
		t.Fatalf("Load(includeText=true) error = %v", err)
	}
	original, ok := storeWithText.GetOriginal("Apache-2.0")
	if !ok {
		t.Fatal("GetOriginal(Apache-2.0) not found")
	}
	if _, ok := original.TextProcessed(); !ok {
		t.Error("includeText=true: canonical text should be retained")
	}

	storeWithoutText := license.NewStore()
	if err := Load("testdata", storeWithoutText, false); err != nil {
		t.Fatalf("Load(includeText=false) error = %v", err)
	}
	original, ok = storeWithoutText.GetOriginal("Apache-2.0")
	if !ok {
		t.Fatal("GetOriginal(Apache-2.0) not found")
	}
	if _, ok := original.TextProcessed(); ok {
		t.Error("includeText=false: canonical text should have been dropped")
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	store := license.NewStore()
	if err := Load("testdata/does-not-exist", store, true); err == nil {
		t.Error("Load() on missing directory returned nil error")
	}
}
