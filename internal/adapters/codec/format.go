package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/core/domain/model/snapshot"

	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeSnapshot reads one snapshot document from r.
func DecodeSnapshot(r io.Reader, format Format) (*snapshot.Snapshot, error) {
	var dto SnapshotDTO

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&dto); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, required("snapshot")
			}
			return nil, decodeError(err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&dto); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, required("snapshot")
			}
			return nil, decodeError(err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	return dto.ToDomain()
}

// EncodePlan writes the plan artifact. JSON output uses four-space indentation.
func EncodePlan(w io.Writer, p *plan.Plan, format Format) error {
	dto := PlanToDTO(p)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(4)
		if err := enc.Encode(dto); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		data, err := MarshalIndent(dto)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// MarshalIndent encodes v as JSON with four-space indentation and without HTML
// escaping.
func MarshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
