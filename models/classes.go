// Package models - Model identity and label set definitions.
package models

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// YOLOClasses are the 80 COCO class names in YOLO output order (no
// background class).
var YOLOClasses = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat", "dog", "horse",
	"sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack", "umbrella", "handbag", "tie",
	"suitcase", "frisbee", "skis", "snowboard", "sports ball", "kite", "baseball bat", "baseball glove",
	"skateboard", "surfboard", "tennis racket", "bottle", "wine glass", "cup", "fork", "knife", "spoon",
	"bowl", "banana", "apple", "sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut",
	"cake", "chair", "couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator", "book",
	"clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}

// LabelSet is an ordered, index-addressable set of class names.
//
// It is explicit configuration: build one from the class list shipped
// with the model and pass it to whatever needs to translate between
// class indices and label text. Nothing in this package holds label
// state at process scope.
type LabelSet struct {
	names []string
	index map[string]int
}

// NewLabelSet builds a LabelSet from an ordered class name list.
// Lookups are case-insensitive. The slice is copied; later mutation of
// the argument does not affect the set.
func NewLabelSet(names []string) *LabelSet {
	s := &LabelSet{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	copy(s.names, names)
	for i, name := range names {
		key := strings.ToLower(name)
		if _, ok := s.index[key]; !ok {
			s.index[key] = i
		}
	}
	return s
}

// Index returns the class index for a label, or false if the label is
// not part of the set.
func (s *LabelSet) Index(label string) (int, bool) {
	i, ok := s.index[strings.ToLower(strings.TrimSpace(label))]
	return i, ok
}

// Name returns the label for a class index.
func (s *LabelSet) Name(classID int) string {
	if classID >= 0 && classID < len(s.names) {
		return s.names[classID]
	}
	return fmt.Sprintf("unknown_%d", classID)
}

// Count returns the number of classes in the set.
func (s *LabelSet) Count() int {
	return len(s.names)
}

// Names returns a copy of the ordered class name list.
func (s *LabelSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// LoadClassFile reads a text file with one class name per line. Blank
// lines are skipped.
//
// Arguments:
//   - filename: Path to the class list file.
//
// Returns:
//   - []string: The ordered class names.
//   - error: An error if the file cannot be read.
func LoadClassFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening class file %s", filename)
	}
	defer f.Close()

	classes := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			classes = append(classes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading class file %s", filename)
	}
	return classes, nil
}
