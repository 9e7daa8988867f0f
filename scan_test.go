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

func twoLicenseStore() *Store {
	s := NewStore()
	s.AddLicense("license-1", NewTextData("aaaaa\nbbbbb\nccccc"))
	s.AddLicense("license-2", NewTextData("1234 5678 1234\n0000\n1010101010\n\n8888 9999"))
	return s
}

func interleavedDocument() string {
	return "aaaaa\nbbbbb\nccccc\n" +
		"1234 5678 1234\n0000\n1010101010\n\n8888 9999"
}

func TestNewScanStrategy_Defaults(t *testing.T) {
	s := NewScanStrategy(NewStore())
	if s.mode != ScanModeElimination {
		t.Errorf("mode = %v, want Elimination", s.mode)
	}
	if s.confidenceThreshold != 0.9 {
		t.Errorf("confidenceThreshold = %v, want 0.9", s.confidenceThreshold)
	}
	if s.shallowLimit != 0.99 {
		t.Errorf("shallowLimit = %v, want 0.99", s.shallowLimit)
	}
	if s.optimize {
		t.Errorf("optimize = true, want false")
	}
	if s.maxPasses != 10 {
		t.Errorf("maxPasses = %v, want 10", s.maxPasses)
	}
	if s.stepSize != 5 {
		t.Errorf("stepSize = %v, want 5", s.stepSize)
	}
}

func TestScanStrategy_Elimination_SingleMatchAboveShallowLimit(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData("aaaaa\nbbbbb\nccccc")

	result, err := NewScanStrategy(s).
		ConfidenceThreshold(0.9).
		ShallowLimit(0.99).
		Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.License == nil {
		t.Fatalf("Scan().License = nil, want license-1")
	}
	if result.License.Name != "license-1" {
		t.Errorf("Scan().License.Name = %q, want %q", result.License.Name, "license-1")
	}
	if len(result.Containing) != 0 {
		t.Errorf("Scan().Containing = %v, want empty (shallow limit hit)", result.Containing)
	}
}

func TestScanStrategy_Elimination_BelowConfidenceLeavesLicenseNil(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData("nothing like either license at all")

	result, err := NewScanStrategy(s).Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.License != nil {
		t.Errorf("Scan().License = %v, want nil", result.License)
	}
}

func TestScanStrategy_Elimination_MultiLicense(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData(interleavedDocument())

	result, err := NewScanStrategy(s).
		ConfidenceThreshold(0.5).
		ShallowLimit(1.0).
		Optimize(true).
		Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Containing) != 2 {
		t.Fatalf("len(Scan().Containing) = %d, want 2: %+v", len(result.Containing), result.Containing)
	}

	seen := map[string]bool{}
	for _, c := range result.Containing {
		seen[c.License.Name] = true
		if c.Score <= 0.5 {
			t.Errorf("Containing[%s].Score = %v, want > 0.5", c.License.Name, c.Score)
		}
	}
	if !seen["license-1"] || !seen["license-2"] {
		t.Errorf("Containing licenses = %v, want both license-1 and license-2", seen)
	}
}

func TestScanStrategy_Elimination_MaxPassesCaps(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData(interleavedDocument())

	result, err := NewScanStrategy(s).
		ConfidenceThreshold(0.5).
		ShallowLimit(1.0).
		Optimize(true).
		MaxPasses(1).
		Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Containing) > 1 {
		t.Errorf("len(Scan().Containing) = %d, want at most 1 with MaxPasses(1)", len(result.Containing))
	}
}

func TestScanStrategy_TopDown_MultiLicense(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData(interleavedDocument())

	result, err := NewScanStrategy(s).
		Mode(ScanModeTopDown).
		ConfidenceThreshold(0.5).
		StepSize(1).
		Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Containing) != 2 {
		t.Fatalf("len(Scan().Containing) = %d, want 2: %+v", len(result.Containing), result.Containing)
	}

	// TopDown walks top to bottom, so results must come out in document order.
	if result.Containing[0].License.Name != "license-1" {
		t.Errorf("Containing[0].License.Name = %q, want %q (document order)", result.Containing[0].License.Name, "license-1")
	}
	if result.Containing[1].License.Name != "license-2" {
		t.Errorf("Containing[1].License.Name = %q, want %q (document order)", result.Containing[1].License.Name, "license-2")
	}
	for _, c := range result.Containing {
		if c.Score <= 0.5 {
			t.Errorf("Containing[%s].Score = %v, want > 0.5", c.License.Name, c.Score)
		}
	}
	if result.Containing[0].LineEnd >= result.Containing[1].LineStart {
		t.Errorf("Containing windows overlap: %+v", result.Containing)
	}
}

func TestScanStrategy_TopDown_NoMatchReturnsEmpty(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData("nothing here resembles either stored license whatsoever")

	result, err := NewScanStrategy(s).Mode(ScanModeTopDown).StepSize(1).Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Containing) != 0 {
		t.Errorf("Scan().Containing = %v, want empty", result.Containing)
	}
	if result.License != nil {
		t.Errorf("Scan().License = %v, want nil (TopDown never sets the top-level match)", result.License)
	}
}

func TestScanStrategy_EmptyStoreReturnsNoMatch(t *testing.T) {
	text := NewTextData("whatever")
	_, err := NewScanStrategy(NewStore()).Scan(&text)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Scan() error = %v, want ErrNoMatch", err)
	}
}

func TestScanStrategy_EmptyInputDoesNotCrash(t *testing.T) {
	s := twoLicenseStore()
	text := NewTextData("")

	result, err := NewScanStrategy(s).Scan(&text)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Score != 0 {
		t.Errorf("Scan().Score = %v, want 0 for empty input", result.Score)
	}
	if result.License != nil {
		t.Errorf("Scan().License = %v, want nil for empty input", result.License)
	}
}
