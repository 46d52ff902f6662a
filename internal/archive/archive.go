// Package archive packs a riddle map into a zip file. Every equation image is
// stored once under equations/; each riddle gets a directory with its own
// image and a solutions/ folder of symlinks back into equations/.
//
//	equations/2=2.png
//	riddles/2=3/riddle.png
//	riddles/2=3/solutions/2=2.png -> ../../../equations/2=2.png
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
	"github.com/vahtras/matchstick/internal/render"
	"github.com/vahtras/matchstick/internal/riddle"
)

const (
	EquationsDir = "equations"
	RiddlesDir   = "riddles"
	RiddleImage  = "riddle.png"
	SolutionsDir = "solutions"
)

// RenderFunc writes the image of one expression.
type RenderFunc func(w io.Writer, e expr.Expression) error

// PNG returns a RenderFunc drawing PNG images with opts.
func PNG(opts render.Options) RenderFunc {
	return func(w io.Writer, e expr.Expression) error {
		return render.PNG(w, e, opts)
	}
}

// Stats counts the entries of a written archive.
type Stats struct {
	Equations int
	Riddles   int
	Links     int
}

// Write packs m into a zip archive on w, rendering each expression with draw.
func Write(w io.Writer, reg *glyph.Registry, m *riddle.Map, draw RenderFunc) (Stats, error) {
	var stats Stats
	zw := zip.NewWriter(w)

	var equations []string
	for _, r := range m.Riddles() {
		equations = append(equations, m.Solutions(r)...)
	}
	slices.Sort(equations)
	equations = slices.Compact(equations)

	for _, eq := range equations {
		name := path.Join(EquationsDir, render.Filename(eq))
		if err := writeImage(zw, reg, name, eq, draw); err != nil {
			return stats, err
		}
		stats.Equations++
	}

	for _, r := range m.Riddles() {
		dir := path.Join(RiddlesDir, Dir(r))
		if err := writeImage(zw, reg, path.Join(dir, RiddleImage), r, draw); err != nil {
			return stats, err
		}
		stats.Riddles++
		for _, eq := range m.Solutions(r) {
			file := render.Filename(eq)
			target := path.Join("..", "..", "..", EquationsDir, file)
			if err := Symlink(zw, path.Join(dir, SolutionsDir, file), target); err != nil {
				return stats, err
			}
			stats.Links++
		}
	}

	if err := zw.Close(); err != nil {
		return stats, fmt.Errorf("close archive: %w", err)
	}
	slog.Info("archive written",
		"equations", stats.Equations,
		"riddles", stats.Riddles,
		"links", stats.Links,
	)
	return stats, nil
}

// Dir is the directory name of a riddle inside riddles/.
func Dir(riddle string) string {
	return strings.Join(strings.Fields(riddle), "")
}

// Symlink adds a symbolic link entry called name pointing at target.
// The link target is stored as the entry body, as Info-ZIP does.
func Symlink(zw *zip.Writer, name, target string) error {
	h := &zip.FileHeader{Name: name, Method: zip.Store}
	h.SetMode(fs.ModeSymlink | 0o777)
	f, err := zw.CreateHeader(h)
	if err != nil {
		return fmt.Errorf("symlink %s: %w", name, err)
	}
	if _, err := io.WriteString(f, target); err != nil {
		return fmt.Errorf("symlink %s: %w", name, err)
	}
	return nil
}

func writeImage(zw *zip.Writer, reg *glyph.Registry, name, s string, draw RenderFunc) error {
	e, err := expr.Scan(reg, s)
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("archive %s: %w", name, err)
	}
	if err := draw(f, e); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
