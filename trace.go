// Copyright 2020 Google Inc.
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
	"flag"
	"fmt"
	"strings"
)

// This file implements a simple trace mechanism for diagnosing why a
// particular license did or didn't match, gated behind -trace-licenses and
// -trace-phases flags in cmd/licensescan.
var traceLicensesFlag = flag.String("trace-licenses", "", "comma-separated list of license names to trace")
var tracePhasesFlag = flag.String("trace-phases", "", "comma-separated list of phases to trace (analyze, optimize, scan)")

var traceLicenses map[string]bool
var tracePhases map[string]bool

// InitTrace samples the -trace-licenses and -trace-phases flags. It must be
// called after flag.Parse, before any traced operation runs.
func InitTrace() {
	traceLicenses = make(map[string]bool)
	tracePhases = make(map[string]bool)

	if len(*traceLicensesFlag) > 0 {
		for _, lic := range strings.Split(*traceLicensesFlag, ",") {
			traceLicenses[lic] = true
		}
	}
	if len(*tracePhasesFlag) > 0 {
		for _, phase := range strings.Split(*tracePhasesFlag, ",") {
			tracePhases[phase] = true
		}
	}
}

func shouldTracePhase(phase string) bool {
	return tracePhases[phase]
}

func isTraceLicense(name string) bool {
	return traceLicenses[name]
}

func traceAnalyze(name string) bool {
	return isTraceLicense(name) && shouldTracePhase("analyze")
}

func traceOptimize(name string) bool {
	return isTraceLicense(name) && shouldTracePhase("optimize")
}

func traceScan(name string) bool {
	return isTraceLicense(name) && shouldTracePhase("scan")
}

type traceFunc func(string, ...interface{}) (int, error)

// Trace is called to emit trace diagnostics; it defaults to printing to
// stdout and can be overridden by callers that want the output elsewhere.
var Trace traceFunc = fmt.Printf
