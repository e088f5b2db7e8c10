// Package search - maps gallery queries onto detection results.
//
// This is the layer between the user's typed query and the detection
// pipeline: it translates a class label to its index, runs decode and
// suppression over a raw model output buffer, and applies the
// query-confidence gate that decides whether an image matches.
package search

import (
	"github.com/pkg/errors"

	"github.com/photoseek/go-detect/images"
	"github.com/photoseek/go-detect/models"
	"github.com/photoseek/go-detect/models/model"
	"github.com/photoseek/go-detect/models/postprocess"
	"github.com/photoseek/go-detect/models/yolov5"
)

const (
	// DefaultDetectionThreshold is the objectness gate applied while
	// decoding. Rows at or below it produce no candidate.
	DefaultDetectionThreshold float32 = 0.30
	// DefaultQueryThreshold is the minimum detection score for a
	// detection to satisfy a query.
	DefaultQueryThreshold float32 = 0.35
)

// Config configures a Searcher.
type Config struct {
	// Classes is the ordered label list of the model. Required.
	Classes []string `json:"classes" yaml:"classes"`
	// Model decodes raw output buffers. When nil, a YOLOv5 model with
	// the reference COCO layout is used; Classes must then hold one
	// label per class column.
	Model model.Model `json:"-" yaml:"-"`
	// DetectionThreshold is the objectness gate for decoding. Zero
	// uses DefaultDetectionThreshold.
	DetectionThreshold float32 `json:"detection_threshold" yaml:"detection_threshold"`
	// QueryThreshold is the minimum score for a detection to count as
	// a query match. Zero uses DefaultQueryThreshold.
	QueryThreshold float32 `json:"query_threshold" yaml:"query_threshold"`
	// NMS configures suppression. Nil uses postprocess.DefaultNMSConfig.
	NMS *postprocess.NMSConfig `json:"nms" yaml:"nms"`
}

// Searcher runs the detection pipeline and answers label queries over
// its results. All state is immutable after construction; a Searcher is
// safe for concurrent use.
type Searcher struct {
	labels             *models.LabelSet
	model              model.Model
	detectionThreshold float32
	queryThreshold     float32
	nms                *postprocess.NMSConfig
}

// New creates a Searcher from explicit configuration.
//
// Arguments:
//   - config: Label list, model, and thresholds.
//
// Returns:
//   - *Searcher: The configured searcher.
//   - error: An error if the configuration is unusable.
func New(config Config) (*Searcher, error) {
	if len(config.Classes) == 0 {
		return nil, errors.New("search requires a class list")
	}

	m := config.Model
	if m == nil {
		params := yolov5.COCOParams()
		if len(config.Classes) != params.ClassCount() {
			return nil, errors.Errorf(
				"class list holds %d labels, reference layout has %d class columns",
				len(config.Classes), params.ClassCount())
		}
		var err error
		m, err = yolov5.NewModel(model.NewModelArgs{Name: model.ModelNameYOLOv5}, params)
		if err != nil {
			return nil, err
		}
	}

	s := &Searcher{
		labels:             models.NewLabelSet(config.Classes),
		model:              m,
		detectionThreshold: config.DetectionThreshold,
		queryThreshold:     config.QueryThreshold,
		nms:                config.NMS,
	}
	if s.detectionThreshold == 0 {
		s.detectionThreshold = DefaultDetectionThreshold
	}
	if s.queryThreshold == 0 {
		s.queryThreshold = DefaultQueryThreshold
	}
	if s.nms == nil {
		s.nms = postprocess.DefaultNMSConfig()
	}
	return s, nil
}

// Detect decodes one raw output buffer and suppresses redundant boxes.
//
// Arguments:
//   - output: The model's flat output buffer for one image.
//   - t: The model-to-view coordinate mapping for that image.
//
// Returns:
//   - The final detections, highest score first, at most the NMS limit.
//   - An error when the buffer does not match the model layout.
func (s *Searcher) Detect(output []float32, t images.Transform) ([]postprocess.Result, error) {
	candidates, err := s.model.Decode(output, t, s.detectionThreshold)
	if err != nil {
		return nil, errors.Wrap(err, "decoding model output")
	}
	return postprocess.Suppress(candidates, s.nms), nil
}

// Query returns the detections whose class matches the queried label
// and whose score reaches the query threshold.
//
// Arguments:
//   - detections: Detections for one image, as returned by Detect.
//   - label: The queried class label, matched case-insensitively.
//
// Returns:
//   - The matching detections in their input order.
//   - An error when the label is not part of the class list.
func (s *Searcher) Query(detections []postprocess.Result, label string) ([]postprocess.Result, error) {
	classID, ok := s.labels.Index(label)
	if !ok {
		return nil, errors.Errorf("unknown class label %q", label)
	}

	var matches []postprocess.Result
	for _, d := range detections {
		if d.Class == classID && d.Score >= s.queryThreshold {
			matches = append(matches, d)
		}
	}
	return matches, nil
}

// Matches reports whether an image's detections satisfy a query.
func (s *Searcher) Matches(detections []postprocess.Result, label string) (bool, error) {
	matches, err := s.Query(detections, label)
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// Label returns the label text for a detection's class index.
func (s *Searcher) Label(r postprocess.Result) string {
	return s.labels.Name(r.Class)
}
