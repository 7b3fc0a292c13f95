package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePuzzle = `0:
###
##.
##.

1:
###
##.
.##

2:
.##
###
##.

4x4: 0 0 2
12x5: 1 0 1
`

func TestParsePuzzle(t *testing.T) {
	puzzle, err := ParsePuzzle(strings.NewReader(samplePuzzle))
	require.NoError(t, err)

	require.Len(t, puzzle.Presents, 3)
	for i, p := range puzzle.Presents {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, 3, p.Width)
		assert.Equal(t, 3, p.Height)
	}
	assert.Equal(t, 7, puzzle.Presents[0].CoveredArea)
	assert.Equal(t, model.MustParseShape("###", "##.", ".##"), puzzle.Presents[1].Shape())

	require.Len(t, puzzle.Regions, 2)
	assert.Equal(t, 4, puzzle.Regions[0].Width)
	assert.Equal(t, 4, puzzle.Regions[0].Height)
	assert.Equal(t, []int{0, 0, 2}, puzzle.Regions[0].PresentsToFit)
	assert.Equal(t, 12, puzzle.Regions[1].Width)
	assert.Equal(t, 5, puzzle.Regions[1].Height)
	assert.Equal(t, "Region 2", puzzle.Regions[1].Label)

	assert.NoError(t, puzzle.Validate())
}

func TestParsePuzzleShortCountList(t *testing.T) {
	input := "0:\n#\n\n1:\n##\n\n3x3: 4\n"
	puzzle, err := ParsePuzzle(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, puzzle.Regions, 1)
	assert.Equal(t, []int{4}, puzzle.Regions[0].PresentsToFit)
}

func TestParsePuzzleEmptyInput(t *testing.T) {
	puzzle, err := ParsePuzzle(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, puzzle.Presents)
	assert.Empty(t, puzzle.Regions)
}

func TestParsePuzzleShapeWithoutBlankLineBeforeRegion(t *testing.T) {
	input := "0:\n##\n3x1: 1\n"
	puzzle, err := ParsePuzzle(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, puzzle.Presents, 1)
	require.Len(t, puzzle.Regions, 1)
	assert.Equal(t, 2, puzzle.Presents[0].CoveredArea)
}

func TestParsePuzzleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  string
	}{
		{"out of order index", "1:\n#\n", model.ErrInvalidPuzzle, "line 1"},
		{"bad shape row", "0:\n##\n#x\n", model.ErrInvalidPuzzle, "line 3"},
		{"empty shape", "0:\n\n", model.ErrInvalidShape, "line 1"},
		{"blank shape", "0:\n...\n", model.ErrInvalidShape, "line 1"},
		{"ragged shape", "0:\n##\n#\n", model.ErrInvalidShape, "line 1"},
		{"bad region size", "0:\n#\n\n0x3: 1\n", model.ErrInvalidPuzzle, "line 4"},
		{"bad count", "0:\n#\n\n3x3: a\n", model.ErrInvalidPuzzle, "line 4"},
		{"negative count", "0:\n#\n\n3x3: -1\n", model.ErrInvalidPuzzle, "line 4"},
		{"too many counts", "0:\n#\n\n3x3: 1 1\n", model.ErrInvalidPuzzle, "line 4"},
		{"shape after region", "0:\n#\n\n3x3: 1\n1:\n#\n", model.ErrInvalidPuzzle, "line 5"},
		{"garbage", "hello\n", model.ErrInvalidPuzzle, "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePuzzle(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestImportPuzzleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.txt")
	require.NoError(t, os.WriteFile(path, []byte(samplePuzzle), 0644))

	puzzle, err := ImportPuzzleFile(path)
	require.NoError(t, err)
	assert.Len(t, puzzle.Presents, 3)
	assert.Len(t, puzzle.Regions, 2)

	_, err = ImportPuzzleFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
