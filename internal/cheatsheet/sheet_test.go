package cheatsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

const sampleLayout = `
F! A  B? L! E
R? .  O  .  A!
O  C! E  A? N!
N! .  S? .  S
T  R? E! E  S!
`

func samplePuzzle(t *testing.T, layout string) *waffle.Puzzle {
	t.Helper()
	pz, err := ingest.ParseLayout(layout)
	require.NoError(t, err)
	return pz
}

func TestColumn(t *testing.T) {
	got := make([]int, 6)
	for i := range got {
		got[i] = Column(i)
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2, 3}, got)
}

func TestBuild_Layout(t *testing.T) {
	s, err := Build(samplePuzzle(t, sampleLayout))
	require.NoError(t, err)
	require.Len(t, s.Panels, waffle.WordCount)
	assert.False(t, s.Failed())

	for i, p := range s.Panels {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, Column(i), p.Column)
		if i < 3 {
			assert.Equal(t, RowVertical, p.Row)
			assert.False(t, p.Horizontal)
		} else {
			assert.Equal(t, RowHorizontal, p.Row)
			assert.True(t, p.Horizontal)
		}
		assert.Len(t, p.Cells, waffle.Size)
	}
}

func TestBuild_Cells(t *testing.T) {
	s, err := Build(samplePuzzle(t, sampleLayout))
	require.NoError(t, err)

	first := s.Panels[0] // F R O N T
	assert.Equal(t, "FRONT", first.Word)
	assert.True(t, first.Cells[0].Solved)
	assert.Equal(t, "F", first.Cells[0].Letter)
	assert.Empty(t, first.Cells[0].Candidates)

	c := first.Cells[2]
	assert.Equal(t, 0, c.X)
	assert.Equal(t, 2, c.Y)
	assert.Equal(t, string(waffle.Incorrect), c.State)
	assert.Equal(t, []Letter{
		{Letter: "A"}, {Letter: "B"}, {Letter: "E"}, {Letter: "R", Underline: true}, {Letter: "S"},
	}, c.Candidates)
}

func TestBuild_IncompleteWord(t *testing.T) {
	layout := strings.Replace(sampleLayout, "N! .  S? .  S", "N! .  S? .  .", 1)
	s, err := Build(samplePuzzle(t, layout))
	require.Error(t, err)
	assert.ErrorIs(t, err, waffle.ErrIncomplete)
	assert.True(t, s.Failed())

	// Only the vertical word at x = 4 touches (4,3).
	for _, p := range s.Panels {
		if p.Index == 2 {
			assert.NotEmpty(t, p.Error)
			assert.Empty(t, p.Cells)
			continue
		}
		assert.Empty(t, p.Error, "panel %d", p.Index)
		assert.Len(t, p.Cells, waffle.Size)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	pz := samplePuzzle(t, sampleLayout)
	a, err := Build(pz)
	require.NoError(t, err)
	b, err := Build(pz)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_Ascii(t *testing.T) {
	s, err := Build(samplePuzzle(t, sampleLayout))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, termenv.Ascii))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, "4 across")
	assert.Contains(t, out, "1 down")
	assert.Contains(t, out, "[F]")
	assert.Contains(t, out, "[ ]")

	// Horizontal band is printed first.
	assert.Less(t, strings.Index(out, "4 across"), strings.Index(out, "1 down"))
}

func TestRender_UnderlinesAttested(t *testing.T) {
	s, err := Build(samplePuzzle(t, sampleLayout))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, termenv.ANSI))
	assert.Contains(t, buf.String(), "\x1b[4mR")
}

func TestRender_IncompletePanel(t *testing.T) {
	layout := strings.Replace(sampleLayout, "N! .  S? .  S", "N! .  S? .  .", 1)
	s, _ := Build(samplePuzzle(t, layout))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, termenv.Ascii))
	assert.Contains(t, buf.String(), failedText)
}
