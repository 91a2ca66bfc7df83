// Package utils holds small parsing helpers shared by the CLI and API layers.
package utils

import (
	"encoding/json"
	"fmt"

	hjson "github.com/hjson/hjson-go/v4"
)

// ParseLenientJSON decodes a scenario payload into schema, accepting both
// strict JSON and Hjson. CLI payloads are hand-typed, so comments, unquoted
// keys, trailing commas and optional commas are all tolerated.
//
// Order of attempts:
// 1. Standard JSON parse
// 2. Hjson parse (most lenient)
func ParseLenientJSON(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if err := hjson.Unmarshal([]byte(input), schema); err != nil {
		return fmt.Errorf("payload is neither valid JSON nor Hjson: %v", err)
	}
	return nil
}
