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

// Package spdx fills a license.Store from a directory of SPDX license-list
// JSON files, the format used by the "license-list-data" repository.
package spdx

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	license "github.com/licensescan/licensescan"
)

type spdxRecord struct {
	LicenseID             string `json:"licenseId"`
	IsDeprecatedLicenseID bool   `json:"isDeprecatedLicenseId"`
	LicenseText           string `json:"licenseText"`
	StandardLicenseHeader string `json:"standardLicenseHeader"`
}

// Load reads every *.json file in dir and adds its license to store.
//
// Files are processed in alphabetical order by file stem, so that ties
// encountered during alias detection resolve deterministically. If a
// license's n-gram fingerprint (see license.TextData.SameMatchData) equals
// that of a license already in the store, the new name is recorded as an
// alias instead of a second entry.
//
// When includeText is true, the stored TextData for each license keeps its
// normalized text and its header variant (if any) does not; when false, the
// opposite holds, so that a cache built without retained text can still
// compare short-form headers.
func Load(dir string, store *license.Store, includeText bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("spdx load: %w", err)
	}

	var stems []string
	stemToName := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		stems = append(stems, stem)
		stemToName[stem] = e.Name()
	}
	sort.Strings(stems)

	for _, stem := range stems {
		path := filepath.Join(dir, stemToName[stem])
		if err := loadOne(path, store, includeText); err != nil {
			return fmt.Errorf("spdx load %s: %w", path, err)
		}
	}
	return nil
}

func loadOne(path string, store *license.Store, includeText bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var rec spdxRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return err
	}
	if rec.LicenseID == "" {
		return fmt.Errorf("missing licenseId")
	}
	if rec.IsDeprecatedLicenseID {
		log.Printf("spdx: skipping %s (deprecated)", rec.LicenseID)
		return nil
	}
	if rec.LicenseText == "" {
		return fmt.Errorf("missing licenseText")
	}

	log.Printf("spdx: processing %s", rec.LicenseID)

	var content license.TextData
	if includeText {
		content = license.NewTextData(rec.LicenseText)
	} else {
		content = license.NewTextData(rec.LicenseText).WithoutText()
	}

	for _, name := range store.Licenses() {
		original, ok := store.GetOriginal(name)
		if !ok {
			continue
		}
		if original.SameMatchData(&content) {
			aliases, _ := store.Aliases(name)
			if err := store.SetAliases(name, append(aliases, rec.LicenseID)); err != nil {
				return err
			}
			log.Printf("spdx: %s already stored; added as an alias for %s", rec.LicenseID, name)
			return nil
		}
	}

	store.AddLicense(rec.LicenseID, content)

	if rec.StandardLicenseHeader != "" {
		var header license.TextData
		if includeText {
			header = license.NewTextData(rec.StandardLicenseHeader).WithoutText()
		} else {
			header = license.NewTextData(rec.StandardLicenseHeader)
		}
		if err := store.AddVariant(rec.LicenseID, license.LicenseTypeHeader, header); err != nil {
			return err
		}
	}

	return nil
}
