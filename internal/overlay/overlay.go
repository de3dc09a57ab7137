// internal/overlay/overlay.go
//
// Activation control for the cheatsheet overlay.
// Responsibilities:
//   - Hold one reader's session: the latest grid snapshot and whether the
//     overlay is currently shown.
//   - Toggle the overlay: showing it regenerates the sheet from the snapshot,
//     hiding it discards the sheet.
//
// The visibility flag lives here and nowhere else; the deduction core only
// ever sees the grid it is handed.

package overlay

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/robalobadob/waffle-cheatsheet/internal/cheatsheet"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

// Session is the activation state for one reader.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Layout    string    `json:"layout"`    // canonical text layout of the last grid read
	Visible   bool      `json:"visible"`   // overlay currently shown
	Toggles   int       `json:"toggles"`   // number of successful toggles
	UpdatedAt time.Time `json:"updatedAt"`
}

// View is what the reader sees after a toggle.
type View struct {
	Visible bool              `json:"visible"`
	Sheet   *cheatsheet.Sheet `json:"sheet,omitempty"`
}

// NewSession validates b and starts a hidden session for it.
func NewSession(b ingest.Board, now time.Time) (*Session, error) {
	nb, err := b.Normalize()
	if err != nil {
		return nil, err
	}
	return &Session{ID: randomID(), Name: nb.Name, Layout: nb.Layout, UpdatedAt: now.UTC()}, nil
}

// Replace swaps in a fresh grid read. A visible overlay stays visible and
// the next Current call reflects the new grid.
func (s *Session) Replace(b ingest.Board, now time.Time) error {
	nb, err := b.Normalize()
	if err != nil {
		return err
	}
	s.Layout = nb.Layout
	if nb.Name != "" {
		s.Name = nb.Name
	}
	s.UpdatedAt = now.UTC()
	return nil
}

// Toggle flips the overlay. Showing it rebuilds the sheet from the stored
// snapshot; if that fails the session is left unchanged and the error is
// returned, so a broken read is never shown.
func (s *Session) Toggle(now time.Time) (View, error) {
	if s.Visible {
		s.Visible = false
		s.Toggles++
		s.UpdatedAt = now.UTC()
		return View{Visible: false}, nil
	}
	sheet, err := s.build()
	if err != nil {
		return View{}, err
	}
	s.Visible = true
	s.Toggles++
	s.UpdatedAt = now.UTC()
	return View{Visible: true, Sheet: &sheet}, nil
}

// Current returns the view for the present state without toggling.
func (s *Session) Current() (View, error) {
	if !s.Visible {
		return View{Visible: false}, nil
	}
	sheet, err := s.build()
	if err != nil {
		return View{}, err
	}
	return View{Visible: true, Sheet: &sheet}, nil
}

func (s *Session) build() (cheatsheet.Sheet, error) {
	pz, err := ingest.ParseLayout(s.Layout)
	if err != nil {
		return cheatsheet.Sheet{}, err
	}
	return cheatsheet.Build(pz)
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
