package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLabelSetIndex verifies label-to-index lookups, including case
// folding and unknown labels.
func TestLabelSetIndex(t *testing.T) {
	set := NewLabelSet(YOLOClasses)
	require.Equal(t, 80, set.Count())

	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{label: "person", want: 0, ok: true},
		{label: "dog", want: 16, ok: true},
		{label: "Dog", want: 16, ok: true},
		{label: " toothbrush ", want: 79, ok: true},
		{label: "unicorn", ok: false},
	}

	for _, tt := range tests {
		i, ok := set.Index(tt.label)
		assert.Equal(t, tt.ok, ok, "label %q", tt.label)
		if tt.ok {
			assert.Equal(t, tt.want, i, "label %q", tt.label)
		}
	}
}

// TestLabelSetName verifies index-to-label mapping and the fallback for
// out-of-range indices.
func TestLabelSetName(t *testing.T) {
	set := NewLabelSet([]string{"cat", "dog"})
	assert.Equal(t, "cat", set.Name(0))
	assert.Equal(t, "dog", set.Name(1))
	assert.Equal(t, "unknown_2", set.Name(2))
	assert.Equal(t, "unknown_-1", set.Name(-1))
}

// TestLabelSetCopiesInput verifies later mutation of the source slice
// does not leak into the set.
func TestLabelSetCopiesInput(t *testing.T) {
	names := []string{"cat", "dog"}
	set := NewLabelSet(names)
	names[0] = "bird"
	assert.Equal(t, "cat", set.Name(0))
}

// TestLoadClassFile verifies reading a class list file, skipping blank
// lines.
func TestLoadClassFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.txt")
	require.NoError(t, os.WriteFile(path, []byte("person\n\ncar\n  dog  \n"), 0o644))

	classes, err := LoadClassFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"person", "car", "dog"}, classes)

	_, err = LoadClassFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
