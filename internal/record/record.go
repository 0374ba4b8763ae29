// Package record holds the Person record that every beat serializes.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Person is the record serialized on every beat. Field order is the
// serialization order.
type Person struct {
	// Name is the person's full name.
	Name string `json:"name" yaml:"name"`
	// Age in years.
	Age uint8 `json:"age" yaml:"age"`
	// Phones lists phone numbers in the order they were added.
	Phones []string `json:"phones" yaml:"phones"`
}

// Format is an interchange representation a Person can be encoded to.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Default returns the fixed record. Each call returns a fresh value so
// callers may not observe each other's mutations.
func Default() Person {
	return Person{
		Name:   "John Doe",
		Age:    30,
		Phones: []string{"+44 1234567", "+44 2345678"},
	}
}

// Marshal encodes p as compact JSON.
func Marshal(p Person) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling person: %w", err)
	}
	return data, nil
}

// Encode encodes p in the given format. JSON output is compact and has no
// trailing newline.
func Encode(p Person, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return Marshal(p)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("encoding person as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding person as yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported record format %q", format)
	}
}
