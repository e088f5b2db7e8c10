// Package postprocess - provides Non-Maximum Suppression for detection results.
package postprocess

import (
	"sort"

	"github.com/photoseek/go-detect/images"
)

const (
	// DefaultIoUThreshold is the overlap ratio above which a
	// lower-scored box is suppressed.
	DefaultIoUThreshold float32 = 0.30
	// DefaultLimit is the maximum number of detections returned per
	// image.
	DefaultLimit = 15
)

// NMSConfig defines parameters for Non-Maximum Suppression.
type NMSConfig struct {
	// IoUThreshold is the overlap threshold for suppression.
	IoUThreshold float32 `json:"iouThreshold" yaml:"iouThreshold"`
	// Limit caps the number of results returned. Zero or negative
	// returns no results.
	Limit int `json:"limit" yaml:"limit"`
}

// DefaultNMSConfig returns an NMSConfig with the default overlap
// threshold and result limit.
func DefaultNMSConfig() *NMSConfig {
	return &NMSConfig{
		IoUThreshold: DefaultIoUThreshold,
		Limit:        DefaultLimit,
	}
}

// Suppress performs greedy Non-Maximum Suppression over candidate
// detections.
//
// Candidates are stably sorted by descending score, so candidates with
// equal scores keep their original relative order. The highest-scored
// remaining candidate is kept and every later candidate whose overlap
// with it exceeds the threshold is discarded, until the limit is
// reached or no candidates remain. The input slice is not modified.
//
// Arguments:
//   - candidates: Candidate detections in any order.
//   - config: Overlap threshold and result limit.
//
// Returns:
//   - Kept detections in descending score order, at most config.Limit
//     of them. If no candidates are provided, returns nil.
func Suppress(candidates []Result, config *NMSConfig) []Result {
	n := len(candidates)
	if n == 0 || config.Limit <= 0 {
		return nil
	}

	sorted := make([]Result, n)
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	// Ownership of the suppression flags is local to this call.
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	numActive := n

	filtered := make([]Result, 0, min(n, config.Limit))

	for i := 0; i < n && numActive > 0; i++ {
		if !active[i] {
			continue
		}
		filtered = append(filtered, sorted[i])
		if len(filtered) >= config.Limit {
			break
		}
		active[i] = false
		numActive--

		for j := i + 1; j < n; j++ {
			if !active[j] {
				continue
			}
			if Overlap(sorted[i].Box, sorted[j].Box) > config.IoUThreshold {
				active[j] = false
				numActive--
			}
		}
	}

	return filtered
}

// Overlap computes the suppression overlap ratio between two boxes.
//
// Every edge of the intersection is the maximum of the two boxes'
// corresponding edges; the intersection width and height are clamped at
// zero. A box with non-positive area overlaps nothing, and a
// non-positive union yields 0.
//
// This is not the textbook IoU (which takes the minimum of the two
// right/bottom edges); see images.CalculateIoU for that. The suppressor
// keeps this form so that suppression decisions are reproducible
// against the reference pipeline.
func Overlap(a, b images.Rect) float32 {
	areaA := a.Area()
	if areaA <= 0 {
		return 0
	}
	areaB := b.Area()
	if areaB <= 0 {
		return 0
	}

	ix1 := max(a.X1, b.X1)
	iy1 := max(a.Y1, b.Y1)
	ix2 := max(a.X2, b.X2)
	iy2 := max(a.Y2, b.Y2)

	interW := max(ix2-ix1, 0)
	interH := max(iy2-iy1, 0)
	inter := interW * interH

	union := areaA + areaB - inter
	if union <= 0 {
		return 0
	}
	return float32(inter) / float32(union)
}
