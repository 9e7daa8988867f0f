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
	"strings"
)

// TextData is the compiled, matchable form of a single text, produced by
// preprocessing and n-gram fingerprinting. It's the structure compared when
// scoring one text against another.
//
// A TextData is immutable: every method that "changes" it returns a new
// value rather than mutating the receiver.
type TextData struct {
	matchData       NgramSet
	viewStart       int
	viewEnd         int
	linesNormalized []string
	textProcessed   *string
}

// NewTextData normalizes and fingerprints text, retaining the normalized
// lines and processed text for later optimization and diagnostics. Use
// WithoutText if that extra retained data isn't wanted.
func NewTextData(text string) TextData {
	normalized := normalizeLines(text)
	processed := applyAggressive(strings.Join(normalized, "\n"))
	return TextData{
		matchData:       NewNgramSetFromString(processed, 2),
		viewStart:       0,
		viewEnd:         len(normalized),
		linesNormalized: normalized,
		textProcessed:   &processed,
	}
}

// WithoutText returns a copy of t with its retained text discarded, keeping
// only the match data needed for scoring. Other TextData methods that
// require the original lines will return ErrMissingText on the result.
func (t TextData) WithoutText() TextData {
	return TextData{matchData: t.matchData}
}

// LinesView returns the 0-indexed, inclusive-start/exclusive-end bounds of
// the currently active line range.
func (t TextData) LinesView() (int, int) {
	return t.viewStart, t.viewEnd
}

// WithView returns a copy of t with its view narrowed to lines [start, end),
// re-fingerprinting only that slice of the retained text.
func (t TextData) WithView(start, end int) (TextData, error) {
	if t.linesNormalized == nil {
		return TextData{}, fmt.Errorf("with view: %w", ErrMissingText)
	}
	view := t.linesNormalized[start:end]
	processed := applyAggressive(strings.Join(view, "\n"))
	return TextData{
		matchData:       NewNgramSetFromString(processed, 2),
		viewStart:       start,
		viewEnd:         end,
		linesNormalized: t.linesNormalized,
		textProcessed:   &processed,
	}, nil
}

// WhiteOut blanks out the lines currently in view and restores the view to
// the full (now-edited) text, useful for re-scanning a document for a second
// license after the first has been located.
func (t TextData) WhiteOut() (TextData, error) {
	if t.linesNormalized == nil {
		return TextData{}, fmt.Errorf("white out: %w", ErrMissingText)
	}
	newLines := make([]string, len(t.linesNormalized))
	for i, line := range t.linesNormalized {
		if i >= t.viewStart && i < t.viewEnd {
			newLines[i] = ""
		} else {
			newLines[i] = line
		}
	}
	processed := applyAggressive(strings.Join(newLines, "\n"))
	return TextData{
		matchData:       NewNgramSetFromString(processed, 2),
		viewStart:       0,
		viewEnd:         len(newLines),
		linesNormalized: newLines,
		textProcessed:   &processed,
	}, nil
}

// Lines returns the normalized lines within the current view.
func (t TextData) Lines() ([]string, error) {
	if t.linesNormalized == nil {
		return nil, fmt.Errorf("lines: %w", ErrMissingText)
	}
	return t.linesNormalized[t.viewStart:t.viewEnd], nil
}

// TextProcessed returns the fully processed text for the current view, if
// retained.
func (t TextData) TextProcessed() (string, bool) {
	if t.textProcessed == nil {
		return "", false
	}
	return *t.textProcessed, true
}

// MatchScore returns the Dice similarity between t and other.
func (t TextData) MatchScore(other *TextData) float64 {
	return t.matchData.Dice(other.matchData)
}

// SameMatchData reports whether t and other have identical n-gram
// fingerprints (same arity and the same count for every gram), regardless of
// what view or retained lines either one carries. Texts whose processed forms
// differ but yield the same n-gram counts compare as equal. Used to detect
// duplicate license texts filed under different names.
func (t TextData) SameMatchData(other *TextData) bool {
	if t.matchData.N != other.matchData.N || t.matchData.Size != other.matchData.Size {
		return false
	}
	if len(t.matchData.Map) != len(other.matchData.Map) {
		return false
	}
	for gram, count := range t.matchData.Map {
		if other.matchData.Map[gram] != count {
			return false
		}
	}
	return true
}

// OptimizeBounds searches for the sub-range of t's current view that best
// matches other, returning a copy of t narrowed to that range along with its
// score. The search never expands outside t's current view.
//
// This isn't guaranteed to find the exact optimum when blank lines surround
// the real match, since runs of blank lines tend to score identically. The
// returned score is never lower than t's own score against other: if the
// search settles on a worse range, t itself is returned unchanged.
func (t TextData) OptimizeBounds(other *TextData) (TextData, float64, error) {
	if t.linesNormalized == nil {
		return TextData{}, 0, fmt.Errorf("optimize bounds: %w", ErrMissingText)
	}

	start, end := t.viewStart, t.viewEnd

	endOptimized, _, err := t.searchOptimize(start, end,
		func(e int) (float64, error) {
			v, err := t.WithView(start, e)
			if err != nil {
				return 0, err
			}
			return v.MatchScore(other), nil
		},
		func(e int) (TextData, error) {
			return t.WithView(start, e)
		},
	)
	if err != nil {
		return TextData{}, 0, err
	}
	newEnd := endOptimized.viewEnd

	optimized, score, err := endOptimized.searchOptimize(endOptimized.viewStart, endOptimized.viewEnd,
		func(s int) (float64, error) {
			v, err := endOptimized.WithView(s, newEnd)
			if err != nil {
				return 0, err
			}
			return v.MatchScore(other), nil
		},
		func(s int) (TextData, error) {
			return endOptimized.WithView(s, newEnd)
		},
	)
	if err != nil {
		return TextData{}, 0, err
	}
	if base := t.MatchScore(other); score < base {
		return t, base, nil
	}
	return optimized, score, nil
}

// searchOptimize performs a memoized ternary search over [left, right] for
// the index that maximizes score, then builds the resulting TextData with
// value. Ties are resolved in favor of the later (higher) index.
func (t TextData) searchOptimize(
	left, right int,
	score func(int) (float64, error),
	value func(int) (TextData, error),
) (TextData, float64, error) {
	memo := make(map[int]float64)
	var callErr error
	checkScore := func(i int) float64 {
		if s, ok := memo[i]; ok {
			return s
		}
		s, err := score(i)
		if err != nil {
			callErr = err
			return 0
		}
		memo[i] = s
		return s
	}

	var search func(left, right int) (int, float64)
	search = func(left, right int) (int, float64) {
		if right-left <= 3 {
			best := left
			bestScore := checkScore(left)
			for x := left + 1; x <= right; x++ {
				s := checkScore(x)
				if s >= bestScore {
					best, bestScore = x, s
				}
			}
			return best, bestScore
		}

		low := (left*2 + right) / 3
		high := (left + right*2) / 3
		scoreLow := checkScore(low)
		scoreHigh := checkScore(high)
		if scoreLow > scoreHigh {
			return search(left, high-1)
		}
		return search(low+1, right)
	}

	idx, s := search(left, right)
	if callErr != nil {
		return TextData{}, 0, callErr
	}
	v, err := value(idx)
	if err != nil {
		return TextData{}, 0, err
	}
	return v, s, nil
}
