// Package seed loads an initial record collection from a file.
//
// Two formats are supported, picked by file extension:
//
//	.yaml, .yml  YAML document decoded with strict field checking
//	.cue         CUE document unified with the #Record schema below
//
// Both formats share the same shape:
//
//	records:
//	  - id: "optional-fixed-id"
//	    name: "Widget"
//	    category: "EUR"
//
// Loaders only check the file's shape. The record store applies its own
// validation when the records are passed to record.WithSeed.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/itemstore/internal/record"
)

// Error codes for seed loading failures.
const (
	ErrCodeRead        = "S001" // File could not be read
	ErrCodeParse       = "S002" // YAML/CUE syntax error
	ErrCodeSchema      = "S003" // Document does not match the record schema
	ErrCodeUnsupported = "S004" // Unknown file extension
)

// Document is the decoded form of a seed file.
type Document struct {
	Records []Entry `yaml:"records" json:"records"`
}

// Entry is one record in a seed file.
type Entry struct {
	ID       string `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// Error describes why a seed file could not be loaded.
type Error struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads a seed file, choosing the decoder by extension.
func Load(path string) ([]record.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".cue":
		return LoadCUE(path)
	default:
		return nil, &Error{
			Code:    ErrCodeUnsupported,
			Path:    path,
			Message: fmt.Sprintf("unsupported seed format %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}
}

// LoadYAML reads a YAML seed file. Unknown fields are rejected so typos like
// "catgory:" fail loudly instead of producing empty categories.
func LoadYAML(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Path: path, Message: "failed to read seed file", Err: err}
	}
	return ParseYAML(path, data)
}

// ParseYAML decodes YAML seed data. name is used in error messages.
func ParseYAML(name string, data []byte) ([]record.Record, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		// An empty file decodes to io.EOF: treat as no records.
		if errors.Is(err, io.EOF) {
			return []record.Record{}, nil
		}
		return nil, &Error{Code: ErrCodeParse, Path: name, Message: fmt.Sprintf("failed to parse YAML: %v", err), Err: err}
	}
	return doc.toRecords(), nil
}

func (d Document) toRecords() []record.Record {
	out := make([]record.Record, 0, len(d.Records))
	for _, e := range d.Records {
		out = append(out, record.Record{ID: e.ID, Name: e.Name, Category: e.Category})
	}
	return out
}
