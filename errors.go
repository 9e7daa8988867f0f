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

import "errors"

// Sentinel errors returned by this package. Callers should compare against
// these with errors.Is rather than matching on message text.
var (
	// ErrCacheVersion is returned by StoreFromCache when the persisted
	// cache's version tag doesn't match what this package writes.
	ErrCacheVersion = errors.New("license: cache version mismatch")

	// ErrCacheCorrupt is returned by StoreFromCache when the cache's
	// version tag checks out but decompression or decoding failed.
	ErrCacheCorrupt = errors.New("license: cache is corrupt")

	// ErrUnknownLicense is returned by Store methods that reference a
	// license name not present in the Store.
	ErrUnknownLicense = errors.New("license: unknown license name")

	// ErrInvalidVariant is returned by Store.AddVariant when called with
	// LicenseTypeOriginal.
	ErrInvalidVariant = errors.New("license: original is not a valid variant type")

	// ErrMissingText is returned by TextData operations that require
	// retained normalized lines when called on a value produced by
	// WithoutText.
	ErrMissingText = errors.New("license: text data does not retain original text")

	// ErrNoMatch is returned by Store.Analyze when the Store is empty.
	ErrNoMatch = errors.New("license: store has no licenses to match against")
)
