// Package xjson is the single JSON seam for the module: storage records and
// the catalog/generation API payloads all marshal through here, so the
// underlying implementation can change in one file.
package xjson

import (
	stdjson "encoding/json"

	gjson "github.com/goccy/go-json"
)

func Marshal(v interface{}) ([]byte, error) {
	return gjson.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return gjson.Unmarshal(data, v)
}

// RawMessage stays interchangeable with encoding/json's RawMessage so callers
// can defer decoding without caring what sits behind the seam.
type RawMessage = stdjson.RawMessage
