package overlay

import (
	"strings"
	"testing"
	"time"

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

var t0 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestNewSession(t *testing.T) {
	s, err := NewSession(ingest.Board{Name: "w", Layout: sampleLayout}, t0)
	require.NoError(t, err)
	assert.Len(t, s.ID, 16)
	assert.Equal(t, "w", s.Name)
	assert.False(t, s.Visible)
	assert.True(t, strings.HasPrefix(s.Layout, "F! A  B? L! E\n"))

	_, err = NewSession(ingest.Board{}, t0)
	assert.ErrorIs(t, err, waffle.ErrMalformed)
}

func TestToggle_ShowHide(t *testing.T) {
	s, err := NewSession(ingest.Board{Layout: sampleLayout}, t0)
	require.NoError(t, err)

	v, err := s.Toggle(t0.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, v.Visible)
	require.NotNil(t, v.Sheet)
	assert.Len(t, v.Sheet.Panels, waffle.WordCount)
	assert.True(t, s.Visible)

	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, v, cur)

	v, err = s.Toggle(t0.Add(2 * time.Minute))
	require.NoError(t, err)
	assert.False(t, v.Visible)
	assert.Nil(t, v.Sheet)
	assert.Equal(t, 2, s.Toggles)
	assert.Equal(t, t0.Add(2*time.Minute), s.UpdatedAt)
}

func TestToggle_IncompleteStaysHidden(t *testing.T) {
	layout := strings.Replace(sampleLayout, "N! .  S? .  S", "N! .  S? .  .", 1)
	s, err := NewSession(ingest.Board{Layout: layout}, t0)
	require.NoError(t, err)

	_, err = s.Toggle(t0)
	assert.ErrorIs(t, err, waffle.ErrIncomplete)
	assert.False(t, s.Visible)
	assert.Zero(t, s.Toggles)
}

func TestReplace_RebuildsFromFreshRead(t *testing.T) {
	s, err := NewSession(ingest.Board{Layout: sampleLayout}, t0)
	require.NoError(t, err)
	_, err = s.Toggle(t0)
	require.NoError(t, err)

	solved := strings.Replace(sampleLayout, "R? .  O  .  A!", "R! .  O! .  A!", 1)
	require.NoError(t, s.Replace(ingest.Board{Layout: solved}, t0))

	v, err := s.Current()
	require.NoError(t, err)
	require.True(t, v.Visible)
	assert.True(t, v.Sheet.Panels[0].Cells[1].Solved)

	assert.Error(t, s.Replace(ingest.Board{Layout: "nope"}, t0))
	assert.True(t, strings.Contains(s.Layout, "R! .  O!"))
}
