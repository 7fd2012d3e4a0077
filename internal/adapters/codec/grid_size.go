package codec

import (
	"bytes"
	"encoding/json"
	"errors"

	"dronedelivery/internal/core/domain/model/kernel"

	"gopkg.in/yaml.v3"
)

// GridSizeDTO accepts both {"width": w, "height": h} and [w, h]. It is always
// written in the object form.
type GridSizeDTO struct {
	Width  *int `json:"width"  yaml:"width"`
	Height *int `json:"height" yaml:"height"`

	badShape bool
}

type gridSizeObject struct {
	Width  *int `json:"width"  yaml:"width"`
	Height *int `json:"height" yaml:"height"`
}

func (g *GridSizeDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []int
		if err := json.Unmarshal(data, &pair); err != nil {
			return invalid("city.grid_size", "expected [width, height] of integers")
		}
		g.setPair(pair)
		return nil
	}

	var obj gridSizeObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return invalid("city.grid_size", "expected an object with width and height")
	}
	g.Width, g.Height = obj.Width, obj.Height
	return nil
}

func (g *GridSizeDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []int
		if err := node.Decode(&pair); err != nil {
			return invalid("city.grid_size", "expected [width, height] of integers")
		}
		g.setPair(pair)
		return nil
	}

	var obj gridSizeObject
	if err := node.Decode(&obj); err != nil {
		return invalid("city.grid_size", "expected a mapping with width and height")
	}
	g.Width, g.Height = obj.Width, obj.Height
	return nil
}

func (g *GridSizeDTO) setPair(pair []int) {
	if len(pair) != 2 {
		g.badShape = true
		return
	}
	g.Width, g.Height = &pair[0], &pair[1]
}

func (g GridSizeDTO) toDomain(path string) (kernel.GridSize, error) {
	if g.badShape {
		return kernel.GridSize{}, invalid(path, "expected exactly two elements")
	}
	var err error
	if g.Width == nil {
		err = required(path + ".width")
	}
	if g.Height == nil {
		err = errors.Join(err, required(path+".height"))
	}
	if err != nil {
		return kernel.GridSize{}, err
	}

	grid, err := kernel.NewGridSize(*g.Width, *g.Height)
	if err != nil {
		return kernel.GridSize{}, fieldError(path, err)
	}
	return grid, nil
}
