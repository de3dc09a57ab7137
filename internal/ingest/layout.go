// internal/ingest/layout.go
//
// Text layout of a Waffle grid, one line per row (y = 0..4), five
// whitespace-separated cells per line:
//
//	F! A  B? L! E
//	R? .  O  .  A!
//
// Cell syntax:
//   - "."   no tile (holes, or a cell the reader could not see)
//   - "X!"  letter X, correct
//   - "X?"  letter X, partially correct
//   - "X"   letter X, incorrect
//
// Blank lines and lines starting with '#' are skipped, like word lists.

package ingest

import (
	"bufio"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

const (
	markCorrect = '!'
	markPartial = '?'
	markEmpty   = "."
)

// ParseLayout reads a text layout into a Puzzle.
func ParseLayout(s string) (*waffle.Puzzle, error) {
	tiles := make(map[waffle.Position]waffle.Tile)
	y := 0
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if y >= waffle.Size {
			return nil, fmt.Errorf("%w: more than %d rows", waffle.ErrMalformed, waffle.Size)
		}
		cells := strings.Fields(line)
		if len(cells) != waffle.Size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", waffle.ErrMalformed, y, len(cells), waffle.Size)
		}
		for x, cell := range cells {
			if cell == markEmpty {
				continue
			}
			t, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d cell %d: %w", y, x, err)
			}
			tiles[waffle.Pos(x, y)] = t
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if y != waffle.Size {
		return nil, fmt.Errorf("%w: %d rows, want %d", waffle.ErrMalformed, y, waffle.Size)
	}
	return waffle.New(tiles)
}

// parseCell decodes a single non-empty layout cell.
func parseCell(cell string) (waffle.Tile, error) {
	r, n := utf8.DecodeRuneInString(cell)
	if r == utf8.RuneError {
		return waffle.Tile{}, fmt.Errorf("%w: bad cell %q", waffle.ErrMalformed, cell)
	}
	t := waffle.Tile{Letter: r, State: waffle.Incorrect}
	switch rest := cell[n:]; rest {
	case "":
	case string(markCorrect):
		t.State = waffle.Correct
	case string(markPartial):
		t.State = waffle.PartiallyCorrect
	default:
		return waffle.Tile{}, fmt.Errorf("%w: bad cell %q", waffle.ErrMalformed, cell)
	}
	return t, nil
}

// FormatLayout writes pz back out in the layout syntax. Cells are padded so
// the columns line up.
func FormatLayout(pz *waffle.Puzzle) string {
	var b strings.Builder
	for y := 0; y < waffle.Size; y++ {
		cells := make([]string, waffle.Size)
		for x := 0; x < waffle.Size; x++ {
			cells[x] = formatCell(pz, waffle.Pos(x, y))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatCell(pz *waffle.Puzzle, p waffle.Position) string {
	t, ok := pz.Tile(p)
	if !ok {
		return markEmpty + " "
	}
	switch t.State {
	case waffle.Correct:
		return string(t.Letter) + string(markCorrect)
	case waffle.PartiallyCorrect:
		return string(t.Letter) + string(markPartial)
	}
	return string(t.Letter) + " "
}
