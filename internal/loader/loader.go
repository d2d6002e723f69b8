// Package loader reads templates, records and counts from YAML or JSON files.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/dictshape/pkg/merge"
	"github.com/aretw0/dictshape/pkg/schema"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported file format")

type format int

const (
	formatYAML format = iota
	formatJSON
)

func detect(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return 0, fmt.Errorf("%w: %s (want .yaml, .yml or .json)", ErrUnsupportedFormat, path)
}

func read(path string) ([]byte, format, error) {
	f, err := detect(path)
	if err != nil {
		return nil, 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, f, nil
}

// LoadTemplate reads a template file.
func LoadTemplate(path string) (*schema.Template, error) {
	data, f, err := read(path)
	if err != nil {
		return nil, err
	}
	var tmpl *schema.Template
	if f == formatJSON {
		tmpl, err = schema.ParseTemplateJSON(data)
	} else {
		tmpl, err = schema.ParseTemplateYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}
	return tmpl, nil
}

// LoadRecord reads a data record file.
func LoadRecord(path string) (*schema.Record, error) {
	data, f, err := read(path)
	if err != nil {
		return nil, err
	}
	var rec *schema.Record
	if f == formatJSON {
		rec, err = schema.ParseRecordJSON(data)
	} else {
		rec, err = schema.ParseRecordYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse record %s: %w", path, err)
	}
	return rec, nil
}

// LoadCounts reads a flat key-to-number file.
func LoadCounts(path string) (*merge.Counts[float64], error) {
	data, f, err := read(path)
	if err != nil {
		return nil, err
	}
	var counts *merge.Counts[float64]
	if f == formatJSON {
		counts, err = merge.ParseJSON[float64](data)
	} else {
		counts, err = merge.ParseYAML[float64](data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse counts %s: %w", path, err)
	}
	return counts, nil
}
