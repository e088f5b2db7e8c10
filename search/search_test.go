package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photoseek/go-detect/images"
	"github.com/photoseek/go-detect/models"
	"github.com/photoseek/go-detect/models/model"
	"github.com/photoseek/go-detect/models/postprocess"
	"github.com/photoseek/go-detect/models/yolov5"
)

// smallSearcher builds a Searcher over a 3-class model with a 2-row
// output layout.
func smallSearcher(t *testing.T, cfg Config) *Searcher {
	t.Helper()
	m, err := yolov5.NewModel(model.NewModelArgs{Name: model.ModelNameYOLOv5}, yolov5.Params{Rows: 2, Cols: 8})
	require.NoError(t, err)

	cfg.Classes = []string{"cat", "dog", "bird"}
	cfg.Model = m
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

// TestNewValidation verifies configuration validation.
func TestNewValidation(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err, "empty class list must be rejected")

	_, err = New(Config{Classes: []string{"just", "three", "labels"}})
	assert.Error(t, err, "class count must match the reference layout when no model is given")

	s, err := New(Config{Classes: models.YOLOClasses})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

// TestDetectPipeline verifies decode plus suppression end to end: two
// duplicate boxes above threshold collapse to the higher-scored one.
func TestDetectPipeline(t *testing.T) {
	s := smallSearcher(t, Config{})

	out := []float32{
		// row 0: dog at (100,100) 40x40, objectness 0.6
		100, 100, 40, 40, 0.6, 0, 0.9, 0,
		// row 1: same box, objectness 0.8
		100, 100, 40, 40, 0.8, 0, 0.9, 0,
	}

	detections, err := s.Detect(out, images.Transform{ImgScaleX: 1, ImgScaleY: 1, ViewScaleX: 1, ViewScaleY: 1})
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, float32(0.8), detections[0].Score)
	assert.Equal(t, "dog", s.Label(detections[0]))
}

// TestDetectShapeMismatch verifies the decoder's validation error
// surfaces through Detect.
func TestDetectShapeMismatch(t *testing.T) {
	s := smallSearcher(t, Config{})
	_, err := s.Detect(make([]float32, 7), images.Transform{})
	assert.Error(t, err)
}

// TestQuery verifies label matching and the query-confidence gate.
func TestQuery(t *testing.T) {
	s := smallSearcher(t, Config{QueryThreshold: 0.5})

	detections := []postprocess.Result{
		{Box: images.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, Score: 0.9, Class: 1},  // dog, above gate
		{Box: images.Rect{X1: 5, Y1: 5, X2: 20, Y2: 20}, Score: 0.4, Class: 1},  // dog, below gate
		{Box: images.Rect{X1: 9, Y1: 9, X2: 30, Y2: 30}, Score: 0.95, Class: 0}, // cat
	}

	matches, err := s.Query(detections, "dog")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, float32(0.9), matches[0].Score)

	matches, err = s.Query(detections, "Bird")
	require.NoError(t, err)
	assert.Empty(t, matches, "no bird detections present")

	_, err = s.Query(detections, "unicorn")
	assert.Error(t, err, "labels outside the class list are errors")
}

// TestMatches verifies the boolean image-matches-query decision.
func TestMatches(t *testing.T) {
	s := smallSearcher(t, Config{})

	detections := []postprocess.Result{
		{Score: 0.9, Class: 2},
	}

	ok, err := s.Matches(detections, "bird")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Matches(detections, "cat")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Matches(nil, "cat")
	require.NoError(t, err)
	assert.False(t, ok, "an image with no detections matches nothing")
}
