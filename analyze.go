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
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Match describes the best-scoring candidate found by Store.Analyze.
type Match struct {
	// Score is the confidence of the match, from 0 to 1.
	Score float64
	// Name is the license this match was found against. Always a name
	// present in the Store, regardless of Score.
	Name string
	// LicenseType says whether Data is a license's canonical text, a
	// header, or an alternate rendition.
	LicenseType LicenseType
	// Data is the license data that matched. It may be optimized further
	// with TextData.OptimizeBounds.
	Data *TextData
}

type partialMatch struct {
	score float64
	name  string
	kind  LicenseType
	data  *TextData
}

// less implements the deterministic tie-break used to pick a single best
// match: highest score first, then license name ascending, then
// LicenseTypeOriginal < LicenseTypeHeader < LicenseTypeAlternate. This total
// order ensures Analyze's result never depends on goroutine scheduling.
func (a partialMatch) less(b partialMatch) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.name != b.name {
		return a.name < b.name
	}
	return a.kind < b.kind
}

// Analyze compares text against every license, header and alternate in the
// store and returns the single best match. The search is fanned out across
// goroutines, but the result is identical no matter how the work is split.
func (s *Store) Analyze(text *TextData) (Match, error) {
	if s.IsEmpty() {
		return Match{}, ErrNoMatch
	}

	names := make([]string, 0, len(s.licenses))
	for name := range s.licenses {
		names = append(names, name)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	chunks := make([][]partialMatch, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			var local []partialMatch
			for i := w; i < len(names); i += workers {
				name := names[i]
				entry := s.licenses[name]

				local = append(local, partialMatch{
					score: entry.Original.MatchScore(text),
					name:  name,
					kind:  LicenseTypeOriginal,
					data:  &entry.Original,
				})
				for j := range entry.Alternates {
					alt := &entry.Alternates[j]
					local = append(local, partialMatch{score: alt.MatchScore(text), name: name, kind: LicenseTypeAlternate, data: alt})
				}
				for j := range entry.Headers {
					head := &entry.Headers[j]
					local = append(local, partialMatch{score: head.MatchScore(text), name: name, kind: LicenseTypeHeader, data: head})
				}
			}
			chunks[w] = local
			return nil
		})
	}
	_ = g.Wait() // no goroutine above can return an error

	var all []partialMatch
	for _, c := range chunks {
		all = append(all, c...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].less(all[j]) })

	best := all[0]
	if traceAnalyze(best.name) {
		Trace("analyze: best match %s (%s) scored %f\n", best.name, best.kind, best.score)
	}
	return Match{Score: best.score, Name: best.name, LicenseType: best.kind, Data: best.data}, nil
}
