// Copyright 2017 Google Inc.
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
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// wordClass approximates the regex \w across the whole of Unicode, since
// Go's regexp restricts \w to ASCII. Letters, numbers and the underscore are
// treated as "word" characters everywhere else in this package.
const wordClass = `\p{L}\p{N}_`

var (
	reJunk          = regexp.MustCompile(`[^` + wordClass + `\s\p{P}]+`)
	reURL           = regexp.MustCompile(`https?://\S+`)
	reHorizontalWS  = regexp.MustCompile(`[ \t\p{Zs}\\/|\x{2044}]+`)
	reQuotes        = regexp.MustCompile(`["'\p{Pi}\p{Pf}]+`)
	reDash          = regexp.MustCompile(`\p{Pd}+`)
	reOpen          = regexp.MustCompile(`\p{Ps}+`)
	reClose         = regexp.MustCompile(`\p{Pe}+`)
	reConnector     = regexp.MustCompile(`\p{Pc}+`)
	reCopyrightSign = regexp.MustCompile(`[©Ⓒⓒ]+`)

	reVerticalWS  = regexp.MustCompile(`[\r\v\f]`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
	reNonWord     = regexp.MustCompile(`[^` + wordClass + `\s]+`)
	reTitleLine   = regexp.MustCompile(`^.*license( version \S+)?( copyright.*)?\n\n`)
	reCopyrightPP = regexp.MustCompile(`(?m)((\n\n|\A\n*)(^ *copyright.*?$)+\n\n)|(\A.*copyright.*$)|(^copyright(\s+(c|\d+))+.*?$)`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// normalizeLines applies the non-destructive, per-line normalization pass.
// It always returns exactly as many lines as the input has, split on '\n'.
func normalizeLines(text string) []string {
	rawLines := strings.Split(text, "\n")
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		line = norm.NFC.String(line)
		line = reJunk.ReplaceAllString(line, "")
		line = reURL.ReplaceAllString(line, "http://blackboxed/url")
		line = reHorizontalWS.ReplaceAllString(line, " ")
		line = normalizePunctuation(line)
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

func normalizePunctuation(s string) string {
	s = reQuotes.ReplaceAllString(s, "'")
	s = reDash.ReplaceAllString(s, "-")
	s = reOpen.ReplaceAllString(s, "(")
	s = reClose.ReplaceAllString(s, ")")
	s = reConnector.ReplaceAllString(s, "_")
	s = reCopyrightSign.ReplaceAllString(s, "(c)")
	return s
}

// applyAggressive runs the destructive normalization pass over a
// newline-joined, already line-normalized text.
func applyAggressive(text string) string {
	text = removeCommonTokens(text)
	text = reVerticalWS.ReplaceAllString(text, "\n")
	text = reBlankRuns.ReplaceAllString(text, "\n\n")
	text = reNonWord.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	text = reTitleLine.ReplaceAllString(text, "")
	text = reCopyrightPP.ReplaceAllString(text, "\n\n")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// trimByteAdjusted returns the prefix of s of length idx, backed off to the
// nearest rune boundary at or before idx if idx would otherwise split a
// multi-byte character.
func trimByteAdjusted(s string, idx int) string {
	if idx >= len(s) {
		return s
	}
	if utf8.RuneStart(s[idx]) {
		return s[:idx]
	}
	trailing := 0
	for i := idx - 1; i >= 0 && !utf8.RuneStart(s[i]); i-- {
		trailing++
	}
	return s[:idx-trailing-1]
}

// lcsSubstr returns the trimmed common byte-prefix of two lines, used to
// detect a repeated comment-marker column such as "* " or "%% ".
func lcsSubstr(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return strings.TrimSpace(trimByteAdjusted(a, n))
}

// removeCommonTokens strips a frequently repeated line-leading substring
// (typically a comment marker column) when it covers at least 80% of the
// text's lines.
func removeCommonTokens(text string) string {
	lines := strings.Split(text, "\n")
	counts := map[string]int{}
	for i := 1; i < len(lines); i++ {
		common := lcsSubstr(lines[i-1], lines[i])
		if len(common) > 3 {
			counts[common]++
		}
	}
	if len(counts) == 0 {
		return text
	}
	// Each prefix counts once for the pair that introduced it plus once per
	// later repeat; only the threshold math depends on this, not which
	// prefix is judged most common.
	for k := range counts {
		counts[k]++
	}

	var mostCommon string
	bestCount := -1
	for k, v := range counts {
		if v > bestCount || (v == bestCount && k < mostCommon) {
			mostCommon, bestCount = k, v
		}
	}

	total := 0
	for k, v := range counts {
		if strings.HasPrefix(k, mostCommon) {
			total += v
		}
	}
	threshold := int(0.8 * float64(len(lines)))
	if total < threshold {
		return text
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(strings.TrimPrefix(line, mostCommon))
	}
	return strings.Join(out, "\n")
}
