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

import "strings"

// NgramSet is a multiset of space-separated n-grams drawn from a processed
// document, used to compute Sorensen-Dice similarity between two texts.
type NgramSet struct {
	Map  map[string]int `msgpack:"map"`
	N    int            `msgpack:"n"`
	Size int            `msgpack:"size"`
}

// NewNgramSet returns an empty NgramSet of the given arity.
func NewNgramSet(n int) NgramSet {
	return NgramSet{Map: make(map[string]int), N: n}
}

// NewNgramSetFromString builds an NgramSet of arity n from s, splitting s on
// single spaces.
func NewNgramSetFromString(s string, n int) NgramSet {
	set := NewNgramSet(n)
	set.analyze(s)
	return set
}

func (s *NgramSet) analyze(text string) {
	words := strings.Split(text, " ")
	window := make([]string, 0, s.N)
	for _, w := range words {
		window = append(window, w)
		if len(window) == s.N {
			s.addGram(strings.Join(window, " "))
			window = window[1:]
		}
	}
}

func (s *NgramSet) addGram(gram string) {
	s.Map[gram]++
	s.Size++
}

// Get returns the number of times gram occurs in the set.
func (s NgramSet) Get(gram string) int {
	return s.Map[gram]
}

// Len returns the total number of n-grams observed, counting duplicates.
func (s NgramSet) Len() int {
	return s.Size
}

// IsEmpty reports whether the set has seen no n-grams.
func (s NgramSet) IsEmpty() bool {
	return s.Size == 0
}

// Dice returns the Sorensen-Dice coefficient between s and other, in [0, 1].
// Sets of differing arity, or where either set is empty, score 0.
func (s NgramSet) Dice(other NgramSet) float64 {
	if other.N != s.N {
		return 0
	}
	if s.IsEmpty() || other.IsEmpty() {
		return 0
	}

	x, y := s, other
	if other.Len() < s.Len() {
		x, y = other, s
	}

	matches := 0
	for gram, count := range x.Map {
		if c := y.Get(gram); c < count {
			matches += c
		} else {
			matches += count
		}
	}

	return (2.0 * float64(matches)) / float64(s.Len()+other.Len())
}
