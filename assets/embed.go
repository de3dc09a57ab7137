package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

//go:embed migrations/*.sql boards/*.yaml
var FS embed.FS

// Migrations returns the SQL migration files, rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		panic(err) // embedded path is fixed at build time
	}
	return sub
}

// SampleBoards decodes the bundled board documents in file-name order.
// Boards without a name are named after their file.
func SampleBoards() ([]ingest.Board, error) {
	entries, err := fs.ReadDir(FS, "boards")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]ingest.Board, 0, len(names))
	for _, name := range names {
		f, err := FS.Open(path.Join("boards", name))
		if err != nil {
			return nil, err
		}
		b, err := ingest.Decode(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		if b.Name == "" {
			b.Name = name
		}
		out = append(out, b)
	}
	return out, nil
}
