// Package compat bridges shapejson descriptors to the generic JSON tree
// model (map[string]any, []any, json.Number) used by reflection-based
// codecs, so schema-described values can flow through code that expects
// encoding/json-style interop.
package compat

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/shapejson/shapejson"
)

// Any encodes v through its descriptor and decodes the result into a generic
// JSON tree. Numbers are preserved as json.Number so integral values survive
// the trip without float conversion.
func Any[T any](v T, d shapejson.Descriptor[T]) (any, error) {
	text := shapejson.Stringify(v, d)
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("compat: decode stringified value: %w", err)
	}
	return tree, nil
}

// FromAny encodes a generic JSON tree and parses the result into dst through
// its descriptor, surfacing the descriptor's own validation.
func FromAny[T any](tree any, dst *T, d shapejson.Descriptor[T]) error {
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("compat: encode tree: %w", err)
	}
	if _, err := shapejson.Parse(string(raw), dst, d); err != nil {
		return err
	}
	return nil
}
