package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

// Class names the game page puts on a tile element.
const (
	classCorrect = "green"
	classPartial = "yellow"
)

// Record is one tile element as read off the game page: its text content,
// its class attribute and its data-pos attribute ({"x":N,"y":N}).
type Record struct {
	Text  string `json:"text" yaml:"text"`
	Class string `json:"class" yaml:"class"`
	Pos   string `json:"pos" yaml:"pos"`
}

// StateFromClass maps a class attribute to a tile state. Anything that is
// neither green nor yellow is incorrect.
func StateFromClass(class string) waffle.TileState {
	for _, c := range strings.Fields(class) {
		if c == classCorrect {
			return waffle.Correct
		}
	}
	for _, c := range strings.Fields(class) {
		if c == classPartial {
			return waffle.PartiallyCorrect
		}
	}
	return waffle.Incorrect
}

// FromRecords builds a Puzzle from tile records. A position seen twice is
// rejected rather than letting the later record win.
func FromRecords(recs []Record) (*waffle.Puzzle, error) {
	tiles := make(map[waffle.Position]waffle.Tile, len(recs))
	for i, rec := range recs {
		p, err := parsePos(rec.Pos)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", waffle.ErrMalformed, i, err)
		}
		text := strings.TrimSpace(rec.Text)
		if utf8.RuneCountInString(text) != 1 {
			return nil, fmt.Errorf("%w: record %d: want one letter, got %q", waffle.ErrMalformed, i, rec.Text)
		}
		if _, dup := tiles[p]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate position %s", waffle.ErrMalformed, i, p)
		}
		r, _ := utf8.DecodeRuneInString(text)
		tiles[p] = waffle.Tile{Letter: r, State: StateFromClass(rec.Class)}
	}
	return waffle.New(tiles)
}

// recordPos is the data-pos attribute. Both coordinates are pointers so a
// missing key is told apart from 0.
type recordPos struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// parsePos decodes a data-pos attribute, requiring both coordinates and
// nothing else.
func parsePos(s string) (waffle.Position, error) {
	var rp recordPos
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rp); err != nil {
		return waffle.Position{}, fmt.Errorf("bad pos %q", s)
	}
	if dec.More() {
		return waffle.Position{}, fmt.Errorf("bad pos %q: trailing data", s)
	}
	if rp.X == nil || rp.Y == nil {
		return waffle.Position{}, fmt.Errorf("bad pos %q: want both x and y", s)
	}
	return waffle.Pos(*rp.X, *rp.Y), nil
}
