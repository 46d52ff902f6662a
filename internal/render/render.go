// Package render draws expressions as matchstick art: box-drawing text for
// terminals and PNG images for archives.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/vahtras/matchstick/internal/expr"
	"github.com/vahtras/matchstick/internal/glyph"
)

// Rows is the height of a text glyph.
const Rows = 5

const (
	heavyBar  = "━━"
	lightBar  = "──"
	heavyPost = "┃"
	lightPost = "│"
)

// Text draws e as five rows of box-drawing characters. Digit matches are
// heavy strokes and empty digit slots light ones; operators show only their
// matches. Cells are separated by one space.
func Text(e expr.Expression) string {
	rows := make([][]string, Rows)
	for _, t := range e {
		cell := textCell(t)
		for r := range rows {
			rows[r] = append(rows[r], cell[r])
		}
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func textCell(t glyph.Token) [Rows]string {
	s := t.Segments()
	if t.Family() == glyph.Operator {
		var c [Rows]string
		c[0], c[1], c[2], c[3], c[4] = "   ", "   ", "━━━", "   ", "   "
		switch {
		case s.Has(0):
			c[1], c[3] = " ┃ ", " ┃ "
		case s.Has(1):
			c[3] = "━━━"
		}
		return c
	}
	bar := func(p int) string {
		if s.Has(p) {
			return heavyBar
		}
		return lightBar
	}
	post := func(p int) string {
		if s.Has(p) {
			return heavyPost
		}
		return lightPost
	}
	return [Rows]string{
		" " + bar(0) + " ",
		post(1) + "  " + post(2),
		" " + bar(3) + " ",
		post(4) + "  " + post(5),
		" " + bar(6) + " ",
	}
}

// Filename turns an equation into an image file name by dropping all
// whitespace: "2 = 1" becomes "2=1.png".
func Filename(eq string) string {
	return strings.Join(strings.Fields(eq), "") + ".png"
}

// Options controls PNG output. Zero values select the defaults.
type Options struct {
	Scale      int         // pixels per stroke width, default 8
	Match      color.Color // default black
	Empty      color.Color // empty digit slots, default light grey; nil with HideEmpty
	Background color.Color // default white
	HideEmpty  bool
}

func (o Options) withDefaults() Options {
	if o.Scale < 1 {
		o.Scale = 8
	}
	if o.Match == nil {
		o.Match = color.Black
	}
	if o.Empty == nil {
		o.Empty = color.Gray{Y: 0xe0}
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}

// Stroke rectangles in stroke units. A digit cell is 6x11 units, an
// operator cell 5x11.
var digitStrokes = [7]image.Rectangle{
	image.Rect(1, 0, 5, 1),
	image.Rect(0, 1, 1, 5),
	image.Rect(5, 1, 6, 5),
	image.Rect(1, 5, 5, 6),
	image.Rect(0, 6, 1, 10),
	image.Rect(5, 6, 6, 10),
	image.Rect(1, 10, 5, 11),
}

var (
	operatorBar     = image.Rect(0, 5, 5, 6)
	operatorStrokes = [2]image.Rectangle{
		image.Rect(2, 3, 3, 8),
		image.Rect(0, 7, 5, 8),
	}
)

const (
	digitWidth    = 6
	operatorWidth = 5
	cellHeight    = 11
	gap           = 2
)

// Image draws e into a new RGBA image.
func Image(e expr.Expression, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	u := opts.Scale

	width := gap
	for _, t := range e {
		width += cellWidth(t) + gap
	}
	img := image.NewRGBA(image.Rect(0, 0, width*u, (cellHeight+2*gap)*u))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	fill := func(r image.Rectangle, x int, c color.Color) {
		r = r.Add(image.Pt(x, gap)).Mul(u)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}

	x := gap
	for _, t := range e {
		s := t.Segments()
		if t.Family() == glyph.Operator {
			fill(operatorBar, x, opts.Match)
			for p, r := range operatorStrokes {
				if s.Has(p) {
					fill(r, x, opts.Match)
				}
			}
		} else {
			for p, r := range digitStrokes {
				switch {
				case s.Has(p):
					fill(r, x, opts.Match)
				case !opts.HideEmpty:
					fill(r, x, opts.Empty)
				}
			}
		}
		x += cellWidth(t) + gap
	}
	return img
}

// PNG encodes Image(e, opts) to w.
func PNG(w io.Writer, e expr.Expression, opts Options) error {
	return png.Encode(w, Image(e, opts))
}

func cellWidth(t glyph.Token) int {
	if t.Family() == glyph.Operator {
		return operatorWidth
	}
	return digitWidth
}
