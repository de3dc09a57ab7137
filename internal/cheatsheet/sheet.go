// internal/cheatsheet/sheet.go
//
// Builds the per-word cheatsheet shown next to a Waffle board.
// Responsibilities:
//   - Run candidate deduction for each of the six words, in derivation order.
//   - Place every word panel in a 3-column display grid: horizontal words on
//     row 1, vertical words on row 2, column (index+1) mod 3 with 0 → 3.
//   - Keep a failed word out of the output instead of rendering a guess.
//
// The sheet is a plain value; text and JSON renderers consume it.

package cheatsheet

import (
	"errors"
	"fmt"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

// Display grid rows.
const (
	RowHorizontal = 1
	RowVertical   = 2
)

// Sheet is the cheatsheet for one grid snapshot.
type Sheet struct {
	Panels []Panel `json:"panels"`
}

// Panel is one word of the sheet.
type Panel struct {
	Index      int    `json:"index"`
	Word       string `json:"word"`
	Horizontal bool   `json:"horizontal"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Cells      []Cell `json:"cells,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Cell is one position of a panel. Solved cells show their letter only.
type Cell struct {
	X          int      `json:"x"`
	Y          int      `json:"y"`
	Letter     string   `json:"letter"`
	State      string   `json:"state"`
	Solved     bool     `json:"solved"`
	Candidates []Letter `json:"candidates,omitempty"`
}

// Letter is a candidate letter; Underline marks letters attested elsewhere
// in the same word.
type Letter struct {
	Letter    string `json:"letter"`
	Underline bool   `json:"underline"`
}

// Column returns the display column for the word at index i.
func Column(i int) int {
	c := (i + 1) % 3
	if c == 0 {
		return 3
	}
	return c
}

// Row returns the display row for a word.
func Row(w waffle.Word) int {
	if w.IsHorizontal() {
		return RowHorizontal
	}
	return RowVertical
}

// Build derives the sheet for pz. A word that cannot be deduced gets a panel
// with only its error set; all such errors are joined into the returned
// error, so callers can fail fast or still show the remaining words.
func Build(pz *waffle.Puzzle) (Sheet, error) {
	words := pz.Words()
	if len(words) != waffle.WordCount {
		return Sheet{}, fmt.Errorf("%w: %d words, want %d", waffle.ErrMalformed, len(words), waffle.WordCount)
	}

	s := Sheet{Panels: make([]Panel, 0, len(words))}
	var errs []error
	for i, w := range words {
		p := Panel{
			Index:      i,
			Word:       w.String(),
			Horizontal: w.IsHorizontal(),
			Row:        Row(w),
			Column:     Column(i),
		}
		ds, err := pz.Candidates(w)
		if err != nil {
			p.Error = err.Error()
			errs = append(errs, fmt.Errorf("word %d: %w", i, err))
			s.Panels = append(s.Panels, p)
			continue
		}
		p.Cells = make([]Cell, 0, len(ds))
		for _, d := range ds {
			p.Cells = append(p.Cells, cellOf(d))
		}
		s.Panels = append(s.Panels, p)
	}
	return s, errors.Join(errs...)
}

func cellOf(d waffle.Deduction) Cell {
	c := Cell{
		X:      d.Position.X,
		Y:      d.Position.Y,
		Letter: string(d.Tile.Letter),
		State:  string(d.Tile.State),
		Solved: d.Tile.Solved(),
	}
	for _, cand := range d.Candidates {
		c.Candidates = append(c.Candidates, Letter{Letter: string(cand.Letter), Underline: cand.Attested})
	}
	return c
}

// Failed reports whether any panel could not be deduced.
func (s Sheet) Failed() bool {
	for _, p := range s.Panels {
		if p.Error != "" {
			return true
		}
	}
	return false
}
