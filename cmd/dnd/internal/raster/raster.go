// Package raster draws a scene board into an image for replay snapshots.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/geometry"
	"github.com/go-drift/dnd/pkg/scene"
)

var (
	background = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	border     = color.RGBA{0x30, 0x30, 0x30, 0xff}
	labelColor = color.RGBA{0x10, 0x10, 0x10, 0xff}
)

// Palette maps node state to fill colors. The first matching rule wins.
type Palette struct {
	Dragging color.RGBA
	Dropped  color.RGBA
	Active   color.RGBA
	Idle     color.RGBA
}

// DefaultPalette is used by Render.
var DefaultPalette = Palette{
	Dragging: color.RGBA{0x64, 0x9c, 0xe6, 0xff},
	Dropped:  color.RGBA{0x6c, 0xc0, 0x6c, 0xff},
	Active:   color.RGBA{0xf0, 0xa8, 0x48, 0xff},
	Idle:     color.RGBA{0xd8, 0xd8, 0xd8, 0xff},
}

// Fill returns the fill color for n under settings.
func (p Palette) Fill(n *scene.Node, settings dnd.Settings) color.RGBA {
	switch {
	case hasClass(n, settings.DraggingClass):
		return p.Dragging
	case hasClass(n, settings.DropClass):
		return p.Dropped
	case hasClass(n, settings.DragOverClass):
		return p.Active
	default:
		return p.Idle
	}
}

func hasClass(n *scene.Node, class string) bool {
	return class != "" && n.HasClass(class)
}

// Render draws every node of board in document order, scaled by scale, and
// labels it with its Label (or ID) in the built-in 7x13 face.
func Render(board *scene.Board, settings dnd.Settings, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	s := float64(scale)
	w := int(math.Ceil(board.Size.Width * s))
	h := int(math.Ceil(board.Size.Height * s))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, n := range board.Nodes() {
		if n == board.Root() {
			continue
		}
		r := toImage(board.BoundingRect(n), board.Origin, s)
		draw.Draw(img, r, image.NewUniform(DefaultPalette.Fill(n, settings)), image.Point{}, draw.Src)
		strokeRect(img, r, border)
		label(img, r, n)
	}
	return img
}

// WritePNG renders board and encodes it as PNG to w.
func WritePNG(w io.Writer, board *scene.Board, settings dnd.Settings, scale int) error {
	return png.Encode(w, Render(board, settings, scale))
}

func toImage(r geometry.Rect, origin geometry.Offset, s float64) image.Rectangle {
	r = r.Translate(-origin.X, -origin.Y)
	return image.Rect(
		int(math.Round(r.Left*s)), int(math.Round(r.Top*s)),
		int(math.Round(r.Right*s)), int(math.Round(r.Bottom*s)),
	)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func label(img *image.RGBA, r image.Rectangle, n *scene.Node) {
	text := n.Label
	if text == "" {
		text = n.ID
	}
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
	}
	if d.MeasureString(text).Ceil() > r.Dx()-4 || face.Height > r.Dy()-2 {
		return
	}
	d.Dot = fixed.P(r.Min.X+2, r.Min.Y+face.Ascent+1)
	d.DrawString(text)
}
