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

// ScanMode selects the algorithm ScanStrategy.Scan uses to look for
// licenses within a document.
type ScanMode int

const (
	// ScanModeElimination iteratively locates the highest-scoring license
	// in a document, whites it out, and repeats until nothing more is
	// found. General purpose and fast.
	ScanModeElimination ScanMode = iota
	// ScanModeTopDown scans down through a document's lines looking for
	// windows that meet the confidence threshold. More accurate for
	// documents that are mostly license text (e.g. attribution files),
	// but significantly slower.
	ScanModeTopDown
)

// IdentifiedLicense names a license that was found, along with the store
// data it matched against.
type IdentifiedLicense struct {
	Name string
	Kind LicenseType
	Data *TextData
}

// ContainedResult describes a single license found within a larger text.
type ContainedResult struct {
	Score     float64
	License   IdentifiedLicense
	LineStart int
	LineEnd   int
}

// ScanResult is the output of ScanStrategy.Scan.
type ScanResult struct {
	Score      float64
	License    *IdentifiedLicense
	Containing []ContainedResult
}

// ScanStrategy is a configurable, high-level wrapper over Store.Analyze for
// scanning whole documents, potentially containing multiple licenses.
//
// Configure one with NewScanStrategy and its chainable setters, then call
// Scan.
type ScanStrategy struct {
	store               *Store
	mode                ScanMode
	confidenceThreshold float64
	shallowLimit        float64
	optimize            bool
	maxPasses           int
	stepSize            int
}

// NewScanStrategy returns a ScanStrategy with conservative defaults: mode
// Elimination, confidence threshold 0.9, shallow limit 0.99, optimize
// disabled.
func NewScanStrategy(store *Store) *ScanStrategy {
	return &ScanStrategy{
		store:               store,
		mode:                ScanModeElimination,
		confidenceThreshold: 0.9,
		shallowLimit:        0.99,
		optimize:            false,
		maxPasses:           10,
		stepSize:            5,
	}
}

// Mode sets the scanning algorithm.
func (s *ScanStrategy) Mode(mode ScanMode) *ScanStrategy {
	s.mode = mode
	return s
}

// ConfidenceThreshold sets the minimum score, from 0 to 1, a match must meet
// to be reported.
func (s *ScanStrategy) ConfidenceThreshold(v float64) *ScanStrategy {
	s.confidenceThreshold = v
	return s
}

// ShallowLimit sets a fast-exit threshold: a top-level match scoring above
// this stops Elimination mode from digging any deeper. Only meaningful with
// Optimize enabled.
func (s *ScanStrategy) ShallowLimit(v float64) *ScanStrategy {
	s.shallowLimit = v
	return s
}

// Optimize enables deeper scanning for additional licenses contained within
// a document (Elimination mode only; ignored if the shallow limit is met).
func (s *ScanStrategy) Optimize(v bool) *ScanStrategy {
	s.optimize = v
	return s
}

// MaxPasses caps the number of licenses Elimination mode will try to
// identify in a single document.
func (s *ScanStrategy) MaxPasses(v int) *ScanStrategy {
	s.maxPasses = v
	return s
}

// StepSize sets the line-window stride used by TopDown mode.
func (s *ScanStrategy) StepSize(v int) *ScanStrategy {
	s.stepSize = v
	return s
}

// Scan runs the configured strategy against text.
func (s *ScanStrategy) Scan(text *TextData) (*ScanResult, error) {
	var result *ScanResult
	var err error
	switch s.mode {
	case ScanModeTopDown:
		result, err = s.scanTopDown(text)
	default:
		result, err = s.scanElimination(text)
	}
	if err == nil && result != nil && result.License != nil && traceScan(result.License.Name) {
		Trace("scan: top-level license %s scored %f\n", result.License.Name, result.Score)
	}
	return result, err
}

func (s *ScanStrategy) scanElimination(text *TextData) (*ScanResult, error) {
	analysis, err := s.store.Analyze(text)
	if err != nil {
		return nil, err
	}
	score := analysis.Score
	var lic *IdentifiedLicense
	var containing []ContainedResult

	if analysis.Score > s.confidenceThreshold {
		lic = &IdentifiedLicense{Name: analysis.Name, Kind: analysis.LicenseType, Data: analysis.Data}
		if analysis.Score > s.shallowLimit {
			return &ScanResult{Score: score, License: lic, Containing: containing}, nil
		}
	}

	if s.optimize {
		current := text
		for n := 0; n < s.maxPasses; n++ {
			optimized, optimizedScore, err := current.OptimizeBounds(analysis.Data)
			if err != nil {
				return nil, err
			}
			if optimizedScore < s.confidenceThreshold {
				break
			}

			start, end := optimized.LinesView()
			if traceOptimize(analysis.Name) {
				Trace("optimize: %s narrowed to lines (%d, %d) scoring %f\n", analysis.Name, start, end, optimizedScore)
			}
			containing = append(containing, ContainedResult{
				Score:     optimizedScore,
				License:   IdentifiedLicense{Name: analysis.Name, Kind: analysis.LicenseType, Data: analysis.Data},
				LineStart: start,
				LineEnd:   end,
			})

			whited, err := optimized.WhiteOut()
			if err != nil {
				return nil, err
			}
			current = &whited
			analysis, err = s.store.Analyze(current)
			if err != nil {
				return nil, err
			}
		}
	}

	return &ScanResult{Score: score, License: lic, Containing: containing}, nil
}

func (s *ScanStrategy) scanTopDown(text *TextData) (*ScanResult, error) {
	_, textEnd := text.LinesView()
	var containing []ContainedResult

	currentStart := 0
	for currentStart < textEnd {
		contained, err := s.topDownFindContainedLicense(text, currentStart)
		if err != nil {
			return nil, err
		}
		if contained == nil {
			break
		}
		currentStart = contained.LineEnd + 1
		containing = append(containing, *contained)
	}

	return &ScanResult{Score: 0, License: nil, Containing: containing}, nil
}

func (s *ScanStrategy) topDownFindContainedLicense(text *TextData, startingAt int) (*ContainedResult, error) {
	_, textEnd := text.LinesView()

	var foundStart, foundEnd int
	var foundMatch *Match
	hitThreshold := false

outer:
	for start := startingAt; start < textEnd; start += s.stepSize {
		for end := start; end <= textEnd; end += s.stepSize {
			view, err := text.WithView(start, end)
			if err != nil {
				return nil, err
			}
			analysis, err := s.store.Analyze(&view)
			if err != nil {
				return nil, err
			}

			if !hitThreshold && analysis.Score >= s.confidenceThreshold {
				hitThreshold = true
			}

			if hitThreshold {
				if analysis.Score < s.confidenceThreshold {
					break outer
				}
				foundStart, foundEnd = start, end
				a := analysis
				foundMatch = &a
			}
		}
	}

	if foundMatch == nil {
		return nil, nil
	}

	view, err := text.WithView(foundStart, foundEnd)
	if err != nil {
		return nil, err
	}
	optimized, optimizedScore, err := view.OptimizeBounds(foundMatch.Data)
	if err != nil {
		return nil, err
	}

	if optimizedScore < s.confidenceThreshold {
		return nil, nil
	}

	start, end := optimized.LinesView()
	return &ContainedResult{
		Score:     optimizedScore,
		License:   IdentifiedLicense{Name: foundMatch.Name, Kind: foundMatch.LicenseType, Data: foundMatch.Data},
		LineStart: start,
		LineEnd:   end,
	}, nil
}
