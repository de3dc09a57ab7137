// internal/ingest/board.go
//
// Board documents: a grid snapshot plus optional metadata, stored as YAML
// (JSON documents parse too, YAML being a superset).
//
//	name: "Waffle #812"
//	date: "2026-10-19"
//	layout: |
//	  F! A  B? L! E
//	  ...
//
// A document carries either a text layout or a list of tile records.

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/waffle-cheatsheet/internal/waffle"
)

// Board is a grid snapshot as submitted by a reader.
type Board struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Date   string   `json:"date,omitempty" yaml:"date,omitempty"`
	Layout string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	Tiles  []Record `json:"tiles,omitempty" yaml:"tiles,omitempty"`
}

// Puzzle builds the grid the board describes.
func (b Board) Puzzle() (*waffle.Puzzle, error) {
	switch {
	case b.Layout != "" && len(b.Tiles) > 0:
		return nil, fmt.Errorf("%w: board has both layout and tiles", waffle.ErrMalformed)
	case b.Layout != "":
		return ParseLayout(b.Layout)
	case len(b.Tiles) > 0:
		return FromRecords(b.Tiles)
	}
	return nil, fmt.Errorf("%w: board is empty", waffle.ErrMalformed)
}

// DateLayout is the only accepted form of Board.Date.
const DateLayout = "2006-01-02"

// Normalize returns a copy of b with its grid rewritten as a canonical
// layout, so equal grids compare equal as text. A date, if set, must be
// YYYY-MM-DD.
func (b Board) Normalize() (Board, error) {
	if b.Date != "" {
		if _, err := time.Parse(DateLayout, b.Date); err != nil {
			return Board{}, fmt.Errorf("%w: bad date %q", waffle.ErrMalformed, b.Date)
		}
	}
	pz, err := b.Puzzle()
	if err != nil {
		return Board{}, err
	}
	return Board{Name: b.Name, Date: b.Date, Layout: FormatLayout(pz)}, nil
}

// Decode reads a single board document from r.
func Decode(r io.Reader) (Board, error) {
	var b Board
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return Board{}, fmt.Errorf("%w: empty document", waffle.ErrMalformed)
		}
		return Board{}, fmt.Errorf("%w: %v", waffle.ErrMalformed, err)
	}
	return b, nil
}

// ReadFile loads a board document from disk. Files that do not parse as a
// document are tried as a bare text layout.
func ReadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, err
	}
	b, err := Decode(bytes.NewReader(data))
	if err == nil && (b.Layout != "" || len(b.Tiles) > 0) {
		return b, nil
	}
	if _, lerr := ParseLayout(string(data)); lerr == nil {
		return Board{Layout: string(data)}, nil
	}
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", path, err)
	}
	return Board{}, fmt.Errorf("%s: %w: no layout or tiles", path, waffle.ErrMalformed)
}

// Encode writes b as YAML.
func Encode(w io.Writer, b Board) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return err
	}
	return enc.Close()
}
