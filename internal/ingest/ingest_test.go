package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

const sampleLayout = `
# waffle snapshot
F! A  B? L! E
R? .  O  .  A!
O  C! E  A? N!
N! .  S? .  S
T  R? E! E  S!
`

func TestParseLayout(t *testing.T) {
	pz, err := ParseLayout(sampleLayout)
	require.NoError(t, err)
	require.NoError(t, pz.Complete())

	tile, ok := pz.Tile(waffle.Pos(2, 0))
	require.True(t, ok)
	assert.Equal(t, waffle.Tile{Letter: 'B', State: waffle.PartiallyCorrect}, tile)

	tile, _ = pz.Tile(waffle.Pos(4, 1))
	assert.Equal(t, waffle.Correct, tile.State)
	tile, _ = pz.Tile(waffle.Pos(0, 4))
	assert.Equal(t, waffle.Incorrect, tile.State)

	_, ok = pz.Tile(waffle.Pos(1, 1))
	assert.False(t, ok)
}

func TestParseLayout_Malformed(t *testing.T) {
	cases := map[string]string{
		"short row":   "A B C D\nA . B . C\nA B C D E\nA . B . C\nA B C D E",
		"four rows":   "A B C D E\nA . B . C\nA B C D E\nA . B . C",
		"six rows":    strings.Repeat("A B C D E\n", 6),
		"bad mark":    "A# B C D E\nA . B . C\nA B C D E\nA . B . C\nA B C D E",
		"tile on hole": "A B C D E\nA B B . C\nA B C D E\nA . B . C\nA B C D E",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLayout(in)
			assert.ErrorIs(t, err, waffle.ErrMalformed)
		})
	}
}

func TestFormatLayout_RoundTrip(t *testing.T) {
	pz, err := ParseLayout(sampleLayout)
	require.NoError(t, err)

	out := FormatLayout(pz)
	assert.Equal(t, "F! A  B? L! E\n", strings.SplitAfter(out, "\n")[0])

	again, err := ParseLayout(out)
	require.NoError(t, err)
	assert.Equal(t, out, FormatLayout(again))
	assert.Equal(t, pz.Tiles(), again.Tiles())
}

func TestStateFromClass(t *testing.T) {
	assert.Equal(t, waffle.Correct, StateFromClass("tile draggable green"))
	assert.Equal(t, waffle.PartiallyCorrect, StateFromClass("tile yellow"))
	assert.Equal(t, waffle.Incorrect, StateFromClass("tile"))
	assert.Equal(t, waffle.Incorrect, StateFromClass("greenish"))
	assert.Equal(t, waffle.Incorrect, StateFromClass(""))
}

func TestFromRecords(t *testing.T) {
	pz, err := FromRecords([]Record{
		{Text: " a ", Class: "tile green", Pos: `{"x":0,"y":0}`},
		{Text: "b", Class: "tile yellow", Pos: `{"x":2,"y":0}`},
		{Text: "c", Class: "tile", Pos: `{"x":1,"y":0}`},
	})
	require.NoError(t, err)

	tile, ok := pz.Tile(waffle.Pos(0, 0))
	require.True(t, ok)
	assert.Equal(t, waffle.Tile{Letter: 'a', State: waffle.Correct}, tile)
	tile, _ = pz.Tile(waffle.Pos(2, 0))
	assert.Equal(t, waffle.PartiallyCorrect, tile.State)

	assert.ErrorIs(t, pz.Complete(), waffle.ErrIncomplete)
}

func TestFromRecords_Malformed(t *testing.T) {
	cases := map[string][]Record{
		"bad pos":      {{Text: "a", Pos: `x=0`}},
		"missing y":    {{Text: "a", Pos: `{"x":3}`}},
		"missing x":    {{Text: "a", Pos: `{"y":2}`}},
		"empty pos":    {{Text: "a", Pos: `{}`}},
		"null pos":     {{Text: "a", Pos: `null`}},
		"null x":       {{Text: "a", Pos: `{"x":null,"y":0}`}},
		"extra key":    {{Text: "a", Pos: `{"x":0,"y":0,"z":1}`}},
		"comment mark": {{Text: "#", Pos: `{"x":0,"y":0}`}},
		"hole mark":    {{Text: ".", Pos: `{"x":2,"y":2}`}},
		"out of range": {{Text: "a", Pos: `{"x":7,"y":0}`}},
		"two letters":  {{Text: "ab", Pos: `{"x":0,"y":0}`}},
		"empty":        {{Text: "", Pos: `{"x":0,"y":0}`}},
		"duplicate": {
			{Text: "a", Pos: `{"x":0,"y":0}`},
			{Text: "b", Pos: `{"x":0,"y":0}`},
		},
	}
	for name, recs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromRecords(recs)
			assert.ErrorIs(t, err, waffle.ErrMalformed)
		})
	}
}

func TestFromRecords_LayoutRoundTrip(t *testing.T) {
	src, err := ParseLayout(sampleLayout)
	require.NoError(t, err)

	var recs []Record
	for _, c := range src.Tiles() {
		letter := string(c.Tile.Letter)
		if c.Position == waffle.Pos(2, 2) {
			letter = "é"
		}
		class := "tile"
		switch c.Tile.State {
		case waffle.Correct:
			class = "tile green"
		case waffle.PartiallyCorrect:
			class = "tile yellow"
		}
		recs = append(recs, Record{
			Text:  letter,
			Class: class,
			Pos:   fmt.Sprintf(`{"x":%d,"y":%d}`, c.Position.X, c.Position.Y),
		})
	}
	pz, err := FromRecords(recs)
	require.NoError(t, err)
	require.NoError(t, pz.Complete())

	b, err := Board{Tiles: recs}.Normalize()
	require.NoError(t, err)
	again, err := ParseLayout(b.Layout)
	require.NoError(t, err)
	assert.Equal(t, pz.Tiles(), again.Tiles())

	tile, _ := again.Tile(waffle.Pos(2, 2))
	assert.Equal(t, 'é', tile.Letter)
}

func TestDecode_YAMLAndJSON(t *testing.T) {
	yml := "name: Waffle #1\ndate: \"2026-10-19\"\nlayout: |\n" +
		indent(sampleLayout, "  ")
	b, err := Decode(strings.NewReader(yml))
	require.NoError(t, err)
	assert.Equal(t, "Waffle #1", b.Name)
	assert.Equal(t, "2026-10-19", b.Date)
	pz, err := b.Puzzle()
	require.NoError(t, err)
	assert.NoError(t, pz.Complete())

	js := `{"name":"dom","tiles":[{"text":"A","class":"tile green","pos":"{\"x\":0,\"y\":0}"}]}`
	b, err = Decode(strings.NewReader(js))
	require.NoError(t, err)
	require.Len(t, b.Tiles, 1)
	pz, err = b.Puzzle()
	require.NoError(t, err)
	tile, _ := pz.Tile(waffle.Pos(0, 0))
	assert.Equal(t, waffle.Correct, tile.State)
}

func TestBoard_PuzzleRejects(t *testing.T) {
	_, err := Board{}.Puzzle()
	assert.ErrorIs(t, err, waffle.ErrMalformed)

	_, err = Board{Layout: sampleLayout, Tiles: []Record{{Text: "a", Pos: `{"x":0,"y":0}`}}}.Puzzle()
	assert.ErrorIs(t, err, waffle.ErrMalformed)
}

func TestBoard_Normalize(t *testing.T) {
	b, err := Board{Name: "n", Layout: sampleLayout}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "n", b.Name)
	assert.True(t, strings.HasPrefix(b.Layout, "F! A  B? L! E\n"))

	b, err = Board{Date: "2026-10-19", Layout: sampleLayout}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", b.Date)

	for _, date := range []string{"19/10/2026", "2026-13-01", "2026-10-19T00:00:00Z", "tomorrow"} {
		_, err = Board{Date: date, Layout: sampleLayout}.Normalize()
		assert.ErrorIs(t, err, waffle.ErrMalformed, date)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.txt")
	require.NoError(t, os.WriteFile(bare, []byte(sampleLayout), 0o644))
	b, err := ReadFile(bare)
	require.NoError(t, err)
	_, err = b.Puzzle()
	assert.NoError(t, err)

	doc := filepath.Join(dir, "doc.yaml")
	f, err := os.Create(doc)
	require.NoError(t, err)
	require.NoError(t, Encode(f, Board{Name: "x", Layout: sampleLayout}))
	require.NoError(t, f.Close())
	b, err = ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "x", b.Name)

	junk := filepath.Join(dir, "junk.txt")
	require.NoError(t, os.WriteFile(junk, []byte("hello"), 0o644))
	_, err = ReadFile(junk)
	assert.ErrorIs(t, err, waffle.ErrMalformed)
}

func indent(s, pad string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		b.WriteString(pad + line + "\n")
	}
	return b.String()
}
