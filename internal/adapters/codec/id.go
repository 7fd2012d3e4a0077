package codec

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"dronedelivery/internal/core/domain/model/kernel"

	"gopkg.in/yaml.v3"
)

type idKind int

const (
	idMissing idKind = iota
	idText
	idNumber
	idOther
)

// IDValue carries an identifier as it appears in a document: a string or a
// number. Decoding never fails on the shape; ToDomain reports bad shapes with
// the field path.
type IDValue struct {
	text string
	kind idKind
}

// NewIDValue wraps a domain identifier for encoding.
func NewIDValue(id kernel.ID) IDValue {
	if id.IsNumeric() {
		return IDValue{text: id.String(), kind: idNumber}
	}
	return IDValue{text: id.String(), kind: idText}
}

// ToDomain converts the value to a kernel.ID.
func (v IDValue) ToDomain(path string) (kernel.ID, error) {
	switch v.kind {
	case idText:
		id, err := kernel.NewID(v.text)
		if err != nil {
			return kernel.ID{}, fieldError(path, err)
		}
		return id, nil
	case idNumber:
		id, err := kernel.NewNumericID(v.text)
		if err != nil {
			return kernel.ID{}, fieldError(path, err)
		}
		return id, nil
	case idMissing:
		return kernel.ID{}, required(path)
	default:
		return kernel.ID{}, invalid(path, "id must be a string or a number")
	}
}

func (v IDValue) MarshalJSON() ([]byte, error) {
	if v.kind == idNumber {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

func (v *IDValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		v.kind = idOther
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v.text, v.kind = s, idText
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		v.text, v.kind = string(data), idNumber
	default:
		v.kind = idOther
	}
	return nil
}

func (v IDValue) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: v.text, Tag: "!!str"}
	if v.kind == idNumber {
		node.Tag = "!!float"
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			node.Tag = "!!int"
		}
	}
	return node, nil
}

func (v *IDValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		v.kind = idOther
		return nil
	}

	switch node.ShortTag() {
	case "!!str":
		v.text, v.kind = node.Value, idText
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			v.kind = idOther
			return nil //nolint:nilerr // reported with the field path by ToDomain
		}
		v.text, v.kind = strconv.FormatInt(n, 10), idNumber
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			v.kind = idOther
			return nil //nolint:nilerr // reported with the field path by ToDomain
		}
		v.text, v.kind = node.Value, idNumber
		if !json.Valid([]byte(node.Value)) {
			v.text = strconv.FormatFloat(f, 'f', -1, 64)
		}
	default:
		v.kind = idOther
	}
	return nil
}
