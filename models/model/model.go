// Package model - Shared model identity, configuration and interfaces.
package model

import (
	"github.com/photoseek/go-detect/images"
	"github.com/photoseek/go-detect/models/postprocess"
)

// Family is the family of models.
type Family string

const (
	// ModelFamilyYOLO is the YOLO model family.
	ModelFamilyYOLO Family = "yolo"
)

// Name is the unique identifier of a model.
type Name string

const (
	// ModelNameYOLOv5 is the name of the YOLOv5 model.
	ModelNameYOLOv5 Name = "yolov5"
)

// BaseModel is the base identity of a model instance.
type BaseModel struct {
	Name   Name
	Family Family
	Path   string
}

// Model decodes a raw inference output buffer into detection results.
//
// Implementations are pure: they hold only immutable configuration, do
// not mutate the output buffer, and are safe to call concurrently on
// independent inputs.
type Model interface {
	// Options returns the identity of the model.
	Options() BaseModel

	// Decode interprets the model's flat output buffer into candidate
	// detections in view pixel space. threshold is the objectness gate:
	// a row produces a candidate only when its objectness strictly
	// exceeds it. Decode returns an error when the buffer length does
	// not match the model's output layout.
	Decode(output []float32, t images.Transform, threshold float32) ([]postprocess.Result, error)
}

// NewModelArgs is the arguments for creating a new model.
type NewModelArgs struct {
	Name Name   `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}
