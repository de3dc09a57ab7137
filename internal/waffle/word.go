package waffle

import "fmt"

// Word is an ordered run of five positions along one row or one column.
// Tiles holds whatever the grid had at those positions; a position with no
// entry makes the word incomplete.
type Word struct {
	positions [Size]Position
	tiles     map[Position]Tile
}

// Cell is one entry of a word in traversal order.
type Cell struct {
	Position Position
	Tile     Tile
	Present  bool
}

// Positions returns the word's positions in traversal order.
func (w Word) Positions() []Position {
	out := make([]Position, Size)
	copy(out, w.positions[:])
	return out
}

// Cells returns the word's cells in traversal order, including missing ones.
func (w Word) Cells() []Cell {
	out := make([]Cell, 0, Size)
	for _, p := range w.positions {
		t, ok := w.tiles[p]
		out = append(out, Cell{Position: p, Tile: t, Present: ok})
	}
	return out
}

// Tile returns the tile at p if p is part of the word and populated.
func (w Word) Tile(p Position) (Tile, bool) {
	t, ok := w.tiles[p]
	return t, ok
}

// IsHorizontal reports whether all positions share one y-coordinate.
func (w Word) IsHorizontal() bool {
	ys := make(map[int]struct{}, Size)
	for _, p := range w.positions {
		ys[p.Y] = struct{}{}
	}
	return len(ys) == 1
}

// IsVertical is the complement of IsHorizontal.
func (w Word) IsVertical() bool { return !w.IsHorizontal() }

// Complete returns ErrIncomplete for the first position without a tile.
func (w Word) Complete() error {
	for _, p := range w.positions {
		if _, ok := w.tiles[p]; !ok {
			return fmt.Errorf("%w: no tile at %s", ErrIncomplete, p)
		}
	}
	return nil
}

// Filter returns the tiles of the word whose state is exactly s.
func (w Word) Filter(s TileState) map[Position]Tile {
	out := make(map[Position]Tile)
	for _, p := range w.positions {
		if t, ok := w.tiles[p]; ok && t.State == s {
			out[p] = t
		}
	}
	return out
}

// IncorrectLetters returns the distinct letters marked incorrect in this word.
func (w Word) IncorrectLetters() map[rune]bool {
	out := make(map[rune]bool)
	for _, t := range w.Filter(Incorrect) {
		out[t.Letter] = true
	}
	return out
}

// PartiallyCorrectLetters returns the distinct letters marked partially
// correct in this word. Junction cells are skipped: their state is shared
// with the crossing word and says nothing about this one.
func (w Word) PartiallyCorrectLetters() map[rune]bool {
	out := make(map[rune]bool)
	for p, t := range w.Filter(PartiallyCorrect) {
		if p.Junction() {
			continue
		}
		out[t.Letter] = true
	}
	return out
}

// String renders the word's letters, '_' standing in for missing tiles.
func (w Word) String() string {
	b := make([]rune, 0, Size)
	for _, c := range w.Cells() {
		if !c.Present {
			b = append(b, '_')
			continue
		}
		b = append(b, c.Tile.Letter)
	}
	return string(b)
}
