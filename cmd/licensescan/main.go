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

// The licensescan program identifies the license(s) present in one or more
// text files. Point it at an SPDX license-list-data json/details directory
// or a prebuilt binary cache, then feed it files or directories to scan.
//
//	$ licensescan -spdx ./license-list-data/json/details LICENSE NOTICE
//	LICENSE: MIT (confidence: 1.000)
//	NOTICE: Apache-2.0 (confidence: 0.942)
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	license "github.com/licensescan/licensescan"
	"github.com/licensescan/licensescan/spdx"
)

var (
	cachePath      = flag.String("cache", "", "path to a prebuilt license cache")
	spdxDir        = flag.String("spdx", "", "path to an SPDX license-list-data json/details directory")
	includeText    = flag.Bool("include-text", false, "retain normalized license text when building from -spdx")
	writeCache     = flag.String("write-cache", "", "write the loaded store to this path as a binary cache, then exit")
	topDown        = flag.Bool("top-down", false, "use the slower top-down scan strategy instead of elimination")
	confidence     = flag.Float64("confidence", 0.9, "minimum confidence score, from 0 to 1, to report a match")
	optimizeBounds = flag.Bool("optimize", false, "search for additional licenses contained within a larger document")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s [flags] <file_or_dir> ...

Identify the license(s) present in one or more files.

Flags:
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
}

func loadStore() (*license.Store, error) {
	switch {
	case *cachePath != "":
		f, err := os.Open(*cachePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return license.StoreFromCache(f)
	case *spdxDir != "":
		store := license.NewStore()
		if err := spdx.Load(*spdxDir, store, *includeText); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("one of -cache or -spdx is required")
	}
}

func expandFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		err := filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func main() {
	flag.Parse()
	license.InitTrace()

	store, err := loadStore()
	if err != nil {
		log.Fatalf("cannot load license store: %v", err)
	}

	if *writeCache != "" {
		f, err := os.Create(*writeCache)
		if err != nil {
			log.Fatalf("cannot create cache file: %v", err)
		}
		defer f.Close()
		if err := store.ToCache(f); err != nil {
			log.Fatalf("cannot write cache: %v", err)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	strategy := license.NewScanStrategy(store).
		ConfidenceThreshold(*confidence).
		Optimize(*optimizeBounds)
	if *topDown {
		strategy.Mode(license.ScanModeTopDown)
	}

	paths, err := expandFiles(flag.Args())
	if err != nil {
		log.Fatalf("cannot walk input paths: %v", err)
	}

	failed := false
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}

		text := license.NewTextData(string(raw))
		result, err := strategy.Scan(&text)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
			continue
		}

		printResult(path, result)
	}

	if failed {
		os.Exit(1)
	}
}

func printResult(path string, result *license.ScanResult) {
	if result.License != nil {
		fmt.Printf("%s: %s (confidence: %.3f)\n", path, result.License.Name, result.Score)
	} else {
		fmt.Printf("%s: no license found\n", path)
	}
	for _, c := range result.Containing {
		fmt.Printf("%s: contains %s (confidence: %.3f, lines %d-%d)\n",
			path, c.License.Name, c.Score, c.LineStart, c.LineEnd)
	}
}
