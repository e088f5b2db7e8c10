// Package models - registry for models.
package models

import (
	"fmt"

	"github.com/photoseek/go-detect/models/model"
	"github.com/photoseek/go-detect/models/yolov5"
)

// NewModel creates a new detection model instance based on the
// specified model name, with the reference output layout for that
// model.
//
// Arguments:
//   - args: Configuration parameters specifying the model name and location.
//
// Returns:
//   - model.Model: A configured model instance implementing the Model interface.
//   - error: An error if the model name is unsupported.
func NewModel(args model.NewModelArgs) (model.Model, error) {
	switch args.Name {
	case model.ModelNameYOLOv5:
		return yolov5.NewModel(args, yolov5.COCOParams())
	default:
		return nil, fmt.Errorf("unsupported model name: %s", args.Name)
	}
}
