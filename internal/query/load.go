package query

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind is the set of query types Load accepts.
type Kind interface {
	Location | Person | Organization | Employee | Job
}

// Load decodes a YAML query from r into a query of type Q. Unknown fields
// are rejected so a misspelled field is not silently treated as Any. An
// empty document yields the zero query, which matches everything.
func Load[Q Kind](r io.Reader) (Q, error) {
	var q Q

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&q); err != nil {
		if errors.Is(err, io.EOF) {
			return q, nil
		}
		return q, fmt.Errorf("decode query: %w", err)
	}
	return q, nil
}

// LoadFile decodes the YAML query stored at path.
func LoadFile[Q Kind](path string) (Q, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero Q
		return zero, fmt.Errorf("open query: %w", err)
	}
	defer f.Close()

	q, err := Load[Q](f)
	if err != nil {
		return q, fmt.Errorf("%s: %w", path, err)
	}
	return q, nil
}
