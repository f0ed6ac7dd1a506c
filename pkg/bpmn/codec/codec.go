package codec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"flowgate-hq/bpmnlint/pkg/bpmn/model"
)

// DefaultMaxFileSize bounds diagram files read from disk.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Decoder reads serialized diagrams.
type Decoder struct {
	maxFileSize int64
}

// NewDecoder creates a decoder with the default file size limit.
func NewDecoder() *Decoder {
	return &Decoder{maxFileSize: DefaultMaxFileSize}
}

// WithMaxFileSize sets the file size limit.
func (d *Decoder) WithMaxFileSize(size int64) *Decoder {
	d.maxFileSize = size
	return d
}

// DecodeFile reads a diagram from a .json, .yaml, or .yml file.
func (d *Decoder) DecodeFile(path string) (*model.Diagram, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access diagram file %q: %w", path, err)
	}
	if info.Size() > d.maxFileSize {
		return nil, fmt.Errorf("diagram file %q is %d bytes, exceeding the %d byte limit", path, info.Size(), d.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diagram file %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported diagram format %q (expected .json, .yaml, or .yml)", filepath.Ext(path))
	}
}

// DecodeJSON parses a diagram from JSON bytes.
func DecodeJSON(data []byte) (*model.Diagram, error) {
	var diagram model.Diagram
	if err := json.Unmarshal(data, &diagram); err != nil {
		return nil, fmt.Errorf("failed to parse diagram JSON: %w", err)
	}
	return &diagram, nil
}

// DecodeYAML parses a diagram from YAML bytes.
func DecodeYAML(data []byte) (*model.Diagram, error) {
	var diagram model.Diagram
	if err := yaml.Unmarshal(data, &diagram); err != nil {
		return nil, fmt.Errorf("failed to parse diagram YAML: %w", err)
	}
	return &diagram, nil
}

// EncodeJSON renders a diagram as indented JSON.
func EncodeJSON(d *model.Diagram) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram JSON: %w", err)
	}
	return data, nil
}

// EncodeYAML renders a diagram as YAML.
func EncodeYAML(d *model.Diagram) ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram YAML: %w", err)
	}
	return data, nil
}
