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
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// cacheVersion is written as the first 11 bytes of every cache stream this
// package produces. A reader that sees any other 11-byte prefix - including
// the historical gzip-framed "askalono-03" format - fails closed rather than
// attempting a legacy decode.
const cacheVersion = "askalono-04"

type cachePayload struct {
	Licenses map[string]*LicenseEntry `msgpack:"licenses"`
}

// textDataWire is the on-disk shape of a TextData: match_data, lines_view,
// lines_normalized and text_processed, with lines_view encoded as a
// (start, end) pair.
type textDataWire struct {
	MatchData       NgramSet `msgpack:"match_data"`
	LinesView       [2]int   `msgpack:"lines_view"`
	LinesNormalized []string `msgpack:"lines_normalized"`
	TextProcessed   *string  `msgpack:"text_processed"`
}

// EncodeMsgpack implements msgpack.CustomEncoder so TextData's unexported
// fields can be written out in the documented wire shape.
func (t TextData) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(textDataWire{
		MatchData:       t.matchData,
		LinesView:       [2]int{t.viewStart, t.viewEnd},
		LinesNormalized: t.linesNormalized,
		TextProcessed:   t.textProcessed,
	})
}

// DecodeMsgpack implements msgpack.CustomDecoder, the inverse of
// EncodeMsgpack.
func (t *TextData) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w textDataWire
	if err := dec.Decode(&w); err != nil {
		return err
	}
	t.matchData = w.MatchData
	t.viewStart = w.LinesView[0]
	t.viewEnd = w.LinesView[1]
	t.linesNormalized = w.LinesNormalized
	t.textProcessed = w.TextProcessed
	return nil
}

// ToCache serializes the store as a version-tagged, zstd-compressed
// MessagePack stream.
func (s *Store) ToCache(w io.Writer) error {
	buf, err := msgpack.Marshal(&cachePayload{Licenses: s.licenses})
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	if _, err := io.WriteString(w, cacheVersion); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(21)))
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if _, err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("cache: %w", err)
	}
	return enc.Close()
}

// StoreFromCache reads a store previously written by Store.ToCache. It
// returns ErrCacheVersion if the stream's version tag doesn't match, or
// ErrCacheCorrupt if decompression or decoding otherwise fails.
func StoreFromCache(r io.Reader) (*Store, error) {
	header := make([]byte, len(cacheVersion))
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if string(header) != cacheVersion {
		return nil, ErrCacheVersion
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	defer dec.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(dec).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	if payload.Licenses == nil {
		payload.Licenses = make(map[string]*LicenseEntry)
	}
	return &Store{licenses: payload.Licenses}, nil
}
