// Package yolov5 - postprocess YOLOv5 model outputs.
package yolov5

import (
	"github.com/pkg/errors"

	"github.com/photoseek/go-detect/images"
	"github.com/photoseek/go-detect/models/postprocess"
)

// Decode interprets the flat row-major output buffer into candidate
// detections in view pixel space.
//
// Each row holds box center x/y and width/height in model input units
// (columns 0-3), the objectness score (column 4), and one score per
// class (columns 5 onward). A row is emitted only when its objectness
// strictly exceeds threshold. The emitted class is the argmax over the
// class columns; the first maximal column wins because only a strictly
// greater score replaces the running maximum. The emitted score is the
// row's objectness, not the class score. Box edges are remapped through
// t and truncated toward zero.
//
// Candidates are returned in row order; Decode does not sort and does
// not suppress. Pass the result to postprocess.Suppress.
//
// Arguments:
//   - output: The flat output buffer, exactly Rows*Cols floats.
//   - t: The model-to-view coordinate mapping.
//   - threshold: The objectness gate in [0, 1].
//
// Returns:
//   - Candidates in ascending row order (possibly empty).
//   - An error when the buffer length does not match the layout.
func (m *YOLOv5) Decode(output []float32, t images.Transform, threshold float32) ([]postprocess.Result, error) {
	rows, cols := m.params.Rows, m.params.Cols
	if len(output) != rows*cols {
		return nil, errors.Errorf(
			"output buffer holds %d floats, layout requires %d (%d rows x %d cols)",
			len(output), rows*cols, rows, cols)
	}

	results := make([]postprocess.Result, 0, 64)

	for i := 0; i < rows; i++ {
		row := output[i*cols : (i+1)*cols]

		objConf := row[4]
		if objConf <= threshold {
			continue
		}

		x := row[0]
		y := row[1]
		w := row[2]
		h := row[3]

		left := x - w/2
		top := y - h/2
		right := x + w/2
		bottom := y + h/2

		classID := 0
		maxScore := row[headerCols]
		for j := headerCols + 1; j < cols; j++ {
			if row[j] > maxScore {
				maxScore = row[j]
				classID = j - headerCols
			}
		}

		results = append(results, postprocess.Result{
			Box: images.Rect{
				X1: int(t.ApplyX(left)),
				Y1: int(t.ApplyY(top)),
				X2: int(t.ApplyX(right)),
				Y2: int(t.ApplyY(bottom)),
			},
			Score: objConf,
			Class: classID,
		})
	}

	return results, nil
}
