// internal/waffle/types.go
//
// Core type definitions for the Waffle cheatsheet.
// Defines:
//   - TileState: solve state of a single letter cell (correct/partial/incorrect).
//   - Position:  comparable grid coordinate, used directly as a map key.
//   - Tile:      a letter plus its state.
//   - Candidate: a letter that may still occupy an unsolved cell.
//
// The grid is always 5x5. Only rows and columns 0, 2 and 4 carry words, so the
// four cells (1,1), (3,1), (1,3), (3,3) never hold a tile.

package waffle

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Size is the width and height of the grid.
const Size = 5

// WordCount is the number of words a grid always derives.
const WordCount = 6

var (
	// ErrIncomplete reports a word position with no tile at deduction time.
	ErrIncomplete = errors.New("waffle: incomplete grid")
	// ErrMalformed reports input that cannot describe a grid at all.
	ErrMalformed = errors.New("waffle: malformed grid")
)

// TileState is the solve state reported for a tile.
// Possible values:
//   - "correct":           letter confirmed in this exact cell.
//   - "partially_correct": letter belongs to the word but not in this cell.
//   - "incorrect":         letter does not belong to this word, as far as known.
type TileState string

const (
	Correct          TileState = "correct"
	PartiallyCorrect TileState = "partially_correct"
	Incorrect        TileState = "incorrect"
)

// Valid reports whether s is one of the three known states.
func (s TileState) Valid() bool {
	switch s {
	case Correct, PartiallyCorrect, Incorrect:
		return true
	}
	return false
}

// Position is an (X, Y) cell coordinate. X is the column, Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// InBounds reports whether both coordinates fall inside the grid.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// OnWord reports whether p belongs to at least one word.
func (p Position) OnWord() bool {
	return p.InBounds() && (p.X%2 == 0 || p.Y%2 == 0)
}

// Junction reports whether p is one of the four edge intersections shared by
// a vertical and a horizontal word at their middle letters.
func (p Position) Junction() bool {
	return junctions[p]
}

var junctions = map[Position]bool{
	{X: 2, Y: 0}: true,
	{X: 0, Y: 2}: true,
	{X: 2, Y: 4}: true,
	{X: 4, Y: 2}: true,
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Tile is a single letter cell. It does not know its own position.
type Tile struct {
	Letter rune
	State  TileState
}

// tileJSON is the wire form of a Tile; the letter travels as a string.
type tileJSON struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileJSON{Letter: string(t.Letter), State: t.State})
}

func (t *Tile) UnmarshalJSON(data []byte) error {
	var w tileJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r, n := utf8.DecodeRuneInString(w.Letter)
	if n == 0 || n != len(w.Letter) || r == utf8.RuneError {
		return fmt.Errorf("%w: letter %q", ErrMalformed, w.Letter)
	}
	*t = Tile{Letter: r, State: w.State}
	return nil
}

// Solved reports whether the tile is confirmed in place.
func (t Tile) Solved() bool { return t.State == Correct }

// Candidate is a letter that may still occupy an unsolved cell.
// Attested marks letters known to belong somewhere in the same word.
type Candidate struct {
	Letter   rune
	Attested bool
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Letter   string `json:"letter"`
		Attested bool   `json:"attested"`
	}{string(c.Letter), c.Attested})
}
