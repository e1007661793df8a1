package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/platform/validator"
)

// catalogFile is the YAML document layout:
//
//	tasks:
//	  - id: MALA-VAGG
//	    name: Målning väggar
//	    unit: m2
//	    labor_norm_per_unit: 0.10
//	    material_price_per_unit: 18
//	    surface: vägg
//	    synonyms: "måla väggar;väggmålning"
type catalogFile struct {
	Tasks []index.Record `yaml:"tasks"`
}

// FileSource reads the catalog from a YAML file.
type FileSource struct {
	path string
	val  *validator.Validator
}

// NewFileSource creates a source for the YAML file at path.
func NewFileSource(path string, val *validator.Validator) *FileSource {
	return &FileSource{path: path, val: val}
}

// Compile-time check that FileSource implements Source.
var _ Source = (*FileSource)(nil)

// Load reads and validates the file.
func (s *FileSource) Load(_ context.Context) ([]index.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseYAML(bytes.NewReader(data), s.val)
}

// ParseYAML decodes a catalog document. Unknown keys are rejected so that a
// misspelled field does not silently fall back to its zero value.
func ParseYAML(r io.Reader, val *validator.Validator) ([]index.Record, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []index.Record{}, nil
		}
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return normalizeRecords(doc.Tasks, val)
}
