// internal/waffle/puzzle.go
//
// Puzzle is an immutable snapshot of a Waffle grid.
// Responsibilities:
//   - Validate the ingested tiles (coordinates, holes, states, letters).
//     Letters must be unicode letters, which also keeps the layout markup
//     ('#', '.', '!', '?') out of the grid.
//   - Derive the six words in their fixed order.
//   - Expose the tile universe and its sorted distinct letters.
//
// A puzzle is built fresh from every grid read and never mutated, so the
// derived views are recomputed on each call instead of cached.

package waffle

import (
	"fmt"
	"sort"
	"unicode"
)

// Puzzle holds the tiles of one grid snapshot keyed by position.
type Puzzle struct {
	tiles map[Position]Tile
}

// New validates tiles and builds a Puzzle from a copy of them.
// Missing word positions are allowed here; deduction for an affected word
// fails with ErrIncomplete instead.
func New(tiles map[Position]Tile) (*Puzzle, error) {
	cp := make(map[Position]Tile, len(tiles))
	for p, t := range tiles {
		if !p.InBounds() {
			return nil, fmt.Errorf("%w: position %s out of range", ErrMalformed, p)
		}
		if !p.OnWord() {
			return nil, fmt.Errorf("%w: position %s is not on any word", ErrMalformed, p)
		}
		if !t.State.Valid() {
			return nil, fmt.Errorf("%w: unknown state %q at %s", ErrMalformed, t.State, p)
		}
		if t.Letter == 0 {
			return nil, fmt.Errorf("%w: empty letter at %s", ErrMalformed, p)
		}
		if !unicode.IsLetter(t.Letter) {
			return nil, fmt.Errorf("%w: %q at %s is not a letter", ErrMalformed, t.Letter, p)
		}
		cp[p] = t
	}
	return &Puzzle{tiles: cp}, nil
}

// Tile returns the tile at p, if any.
func (pz *Puzzle) Tile(p Position) (Tile, bool) {
	t, ok := pz.tiles[p]
	return t, ok
}

// Complete reports ErrIncomplete for the first word position with no tile.
func (pz *Puzzle) Complete() error {
	for _, w := range pz.Words() {
		if err := w.Complete(); err != nil {
			return err
		}
	}
	return nil
}

// Words derives the six words: vertical at x = 0, 2, 4, then horizontal at
// y = 0, 2, 4. Display layout depends on this order.
func (pz *Puzzle) Words() []Word {
	words := make([]Word, 0, WordCount)
	for x := 0; x < Size; x += 2 {
		var ps [Size]Position
		for y := 0; y < Size; y++ {
			ps[y] = Pos(x, y)
		}
		words = append(words, pz.word(ps))
	}
	for y := 0; y < Size; y += 2 {
		var ps [Size]Position
		for x := 0; x < Size; x++ {
			ps[x] = Pos(x, y)
		}
		words = append(words, pz.word(ps))
	}
	return words
}

func (pz *Puzzle) word(ps [Size]Position) Word {
	w := Word{positions: ps, tiles: make(map[Position]Tile, Size)}
	for _, p := range ps {
		if t, ok := pz.tiles[p]; ok {
			w.tiles[p] = t
		}
	}
	return w
}

// Tiles returns every populated word cell exactly once, in word order.
// Cells shared by a vertical and a horizontal word are not repeated.
func (pz *Puzzle) Tiles() []Cell {
	seen := make(map[Position]bool, len(pz.tiles))
	out := make([]Cell, 0, len(pz.tiles))
	for _, w := range pz.Words() {
		for _, c := range w.Cells() {
			if !c.Present || seen[c.Position] {
				continue
			}
			seen[c.Position] = true
			out = append(out, c)
		}
	}
	return out
}

// Letters returns the distinct letters of the tile universe, sorted.
func (pz *Puzzle) Letters() []rune {
	return distinctSorted(pz.Tiles(), func(Tile) bool { return true })
}

// distinctSorted collapses the letters of the tiles accepted by keep into a
// sorted, duplicate-free slice.
func distinctSorted(cells []Cell, keep func(Tile) bool) []rune {
	set := make(map[rune]struct{}, len(cells))
	for _, c := range cells {
		if keep(c.Tile) {
			set[c.Tile.Letter] = struct{}{}
		}
	}
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
