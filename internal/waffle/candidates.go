package waffle

// Deduction is the outcome for one cell of a word. Solved cells carry only
// their letter; every other cell carries its ordered candidates.
type Deduction struct {
	Position   Position    `json:"position"`
	Tile       Tile        `json:"tile"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Candidates computes, for every cell of w in word order, the letters that
// could still occupy it.
//
// For an unsolved tile the pipeline is:
//  1. distinct letters of the puzzle's tile universe, sorted;
//  2. minus letters whose tiles are all correct (already placed);
//  3. minus the tile's own letter;
//  4. minus the letters marked incorrect in w;
//  5. each survivor is flagged Attested if w has it partially correct
//     outside a junction cell.
//
// An incomplete word yields ErrIncomplete and no deductions at all.
func (pz *Puzzle) Candidates(w Word) ([]Deduction, error) {
	if err := w.Complete(); err != nil {
		return nil, err
	}

	open := distinctSorted(pz.Tiles(), func(t Tile) bool { return !t.Solved() })
	incorrect := w.IncorrectLetters()
	partial := w.PartiallyCorrectLetters()

	out := make([]Deduction, 0, Size)
	for _, c := range w.Cells() {
		d := Deduction{Position: c.Position, Tile: c.Tile}
		if c.Tile.Solved() {
			out = append(out, d)
			continue
		}
		d.Candidates = make([]Candidate, 0, len(open))
		for _, r := range open {
			if r == c.Tile.Letter || incorrect[r] {
				continue
			}
			d.Candidates = append(d.Candidates, Candidate{Letter: r, Attested: partial[r]})
		}
		out = append(out, d)
	}
	return out, nil
}
