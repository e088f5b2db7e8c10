// Package yolov5 - YOLOv5 model output decoding.
package yolov5

import (
	"github.com/pkg/errors"

	"github.com/photoseek/go-detect/models/model"
)

// headerCols is the number of non-class columns per row: 4 box geometry
// parameters (center x/y, width, height) plus the objectness score.
const headerCols = 5

// Params defines the fixed output layout of a YOLOv5 model.
type Params struct {
	// Rows is the number of candidate rows in the output buffer.
	Rows int `json:"rows" yaml:"rows"`
	// Cols is the number of columns per row: 4 box parameters, 1
	// objectness score, then one score per class.
	Cols int `json:"cols" yaml:"cols"`
}

// COCOParams returns the output layout of the reference YOLOv5 model
// trained on the 80-class COCO dataset with 640x640 input: 25200 rows
// of 85 columns.
func COCOParams() Params {
	return Params{
		Rows: 25200,
		Cols: 85,
	}
}

// ClassCount returns the number of class score columns in the layout.
func (p Params) ClassCount() int {
	return p.Cols - headerCols
}

// YOLOv5 is the instance of the YOLOv5 model.
type YOLOv5 struct {
	options model.BaseModel
	params  Params
}

// NewModel creates a new YOLOv5 model with the given output layout.
//
// Arguments:
//   - args: Model identity arguments.
//   - params: The output buffer layout. Use COCOParams() for the
//     reference model.
//
// Returns:
//   - The model, or an error if the layout is not usable.
func NewModel(args model.NewModelArgs, params Params) (*YOLOv5, error) {
	if params.Rows <= 0 {
		return nil, errors.Errorf("NewModel requires a positive row count, got %d", params.Rows)
	}
	if params.ClassCount() < 1 {
		return nil, errors.Errorf("NewModel requires at least one class column, got %d columns", params.Cols)
	}

	return &YOLOv5{
		options: model.BaseModel{
			Name:   model.ModelNameYOLOv5,
			Family: model.ModelFamilyYOLO,
			Path:   args.Path,
		},
		params: params,
	}, nil
}

// Options returns the identity of the model.
func (m *YOLOv5) Options() model.BaseModel {
	return m.options
}

// Params returns the output layout of the model.
func (m *YOLOv5) Params() Params {
	return m.params
}
