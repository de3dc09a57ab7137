package cheatsheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/termenv"
)

const (
	cellWidth  = 4
	panelGap   = "   "
	solvedHex  = "#6fb05c"
	failedText = "(incomplete)"
)

// Render writes s as a terminal grid: horizontal words on the first band,
// vertical words on the second, three panels per band. Solved letters are
// boxed, candidates are stacked under their cell and attested candidates are
// underlined. With termenv.Ascii no escape codes are written.
func Render(w io.Writer, s Sheet, profile termenv.Profile) error {
	bands := map[int][]Panel{}
	for _, p := range s.Panels {
		bands[p.Row] = append(bands[p.Row], p)
	}
	for _, row := range []int{RowHorizontal, RowVertical} {
		panels := bands[row]
		if len(panels) == 0 {
			continue
		}
		sort.Slice(panels, func(i, j int) bool { return panels[i].Column < panels[j].Column })

		blocks := make([][]string, len(panels))
		height := 0
		for i, p := range panels {
			blocks[i] = panelLines(p, profile)
			if len(blocks[i]) > height {
				height = len(blocks[i])
			}
		}
		for line := 0; line < height; line++ {
			parts := make([]string, len(blocks))
			for i, b := range blocks {
				if line < len(b) {
					parts[i] = b[line]
				} else {
					parts[i] = strings.Repeat(" ", cellWidth*5)
				}
			}
			if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, panelGap), " ")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// panelLines renders a panel as fixed-width lines (visible width
// cellWidth*5): a title, the letter row and one line per candidate rank.
func panelLines(p Panel, profile termenv.Profile) []string {
	dir := "down"
	if p.Horizontal {
		dir = "across"
	}
	lines := []string{pad(fmt.Sprintf("%d %s", p.Index+1, dir), cellWidth*5)}
	if p.Error != "" {
		return append(lines, pad(failedText, cellWidth*5))
	}

	var top strings.Builder
	depth := 0
	for _, c := range p.Cells {
		if c.Solved {
			letter := profile.String(c.Letter).Bold().Foreground(profile.Color(solvedHex)).String()
			top.WriteString("[" + letter + "]" + strings.Repeat(" ", cellWidth-3))
		} else {
			top.WriteString("[ ]" + strings.Repeat(" ", cellWidth-3))
		}
		if len(c.Candidates) > depth {
			depth = len(c.Candidates)
		}
	}
	lines = append(lines, top.String())

	for rank := 0; rank < depth; rank++ {
		var b strings.Builder
		for _, c := range p.Cells {
			if rank >= len(c.Candidates) {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			l := c.Candidates[rank]
			text := l.Letter
			if l.Underline {
				text = profile.String(l.Letter).Underline().String()
			}
			b.WriteString(" " + text + strings.Repeat(" ", cellWidth-2))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
