// Package term previews the fall in a terminal. Bones are plotted with
// Bresenham lines, the head as a ring of cells and attachments as single
// markers, all into any tcell.Screen.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/stickfall"
)

// Glyphs used by the renderer.
const (
	HeadRune       = 'o'
	AttachmentRune = '*'
	ShardRune      = '.'
)

// hiddenOpacity is the opacity below which the figure is not drawn at all.
const hiddenOpacity = 0.05

// Renderer maps a world rectangle onto the whole screen. It never clears or
// shows the screen; the caller owns the frame.
type Renderer struct {
	World stickfall.Rect

	BoneStyle       tcell.Style
	HeadStyle       tcell.Style
	AttachmentStyle tcell.Style
	ShardStyle      tcell.Style
}

// NewRenderer returns a renderer showing a w x h world with the default
// white-on-black styles.
func NewRenderer(w, h float64) *Renderer {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	return &Renderer{
		World:           stickfall.Rect{Width: w, Height: h},
		BoneStyle:       base,
		HeadStyle:       base.Bold(true),
		AttachmentStyle: base.Foreground(tcell.ColorYellow),
		ShardStyle:      base.Foreground(tcell.ColorLightCyan),
	}
}

// view converts between world units and cells for one screen size.
type view struct {
	r      *Renderer
	w, h   int
	sx, sy float64 // cells per world unit
}

func (r *Renderer) view(s tcell.Screen) view {
	w, h := s.Size()
	v := view{r: r, w: w, h: h}
	if r.World.Width > 0 {
		v.sx = float64(w) / r.World.Width
	}
	if r.World.Height > 0 {
		v.sy = float64(h) / r.World.Height
	}
	return v
}

func (v view) cell(p stickfall.Vec2) (int, int) {
	x := (p.X - v.r.World.X) * v.sx
	y := (p.Y - v.r.World.Y) * v.sy
	return int(math.Floor(x)), int(math.Floor(y))
}

func (v view) set(x, y int, ch rune, st tcell.Style, s tcell.Screen) {
	if x < 0 || y < 0 || x >= v.w || y >= v.h {
		return
	}
	s.SetContent(x, y, ch, nil, st)
}

// Cell returns the screen cell a world point falls in. The result may lie
// off screen.
func (r *Renderer) Cell(s tcell.Screen, p stickfall.Vec2) (int, int) {
	return r.view(s).cell(p)
}

// Draw plots one frame. Attachments behind the skeleton are drawn first so
// bones overwrite them; front attachments are drawn last.
func (r *Renderer) Draw(s tcell.Screen, f stickfall.Frame) {
	o := f.Outline()
	if o.Opacity < hiddenOpacity {
		return
	}
	v := r.view(s)
	dim := o.Opacity < 0.5

	for _, a := range o.Behind {
		x, y := v.cell(a.Position)
		v.set(x, y, AttachmentRune, r.AttachmentStyle.Dim(dim), s)
	}
	for _, seg := range o.Bones {
		x0, y0 := v.cell(seg.From)
		x1, y1 := v.cell(seg.To)
		ch := slopeRune(x1-x0, y1-y0)
		Line(x0, y0, x1, y1, func(x, y int) {
			v.set(x, y, ch, r.BoneStyle.Dim(dim), s)
		})
	}
	if o.HasHead {
		v.ring(o.Head, o.HeadRadius, func(x, y int) {
			v.set(x, y, HeadRune, r.HeadStyle.Dim(dim), s)
		})
	}
	for _, a := range o.Front {
		x, y := v.cell(a.Position)
		v.set(x, y, AttachmentRune, r.AttachmentStyle.Dim(dim), s)
	}
}

// DrawShatter plots each visible shard as a single cell.
func (r *Renderer) DrawShatter(s tcell.Screen, sh *stickfall.Shatter) {
	if !sh.Visible() {
		return
	}
	v := r.view(s)
	for i := range sh.Shards() {
		shard := &sh.Shards()[i]
		if shard.Opacity < hiddenOpacity {
			continue
		}
		x, y := v.cell(stickfall.Vec2{X: shard.X, Y: shard.Y})
		v.set(x, y, ShardRune, r.ShardStyle.Dim(shard.Opacity < 0.4), s)
	}
}

// ring plots an ellipse approximating a world-space circle. Cells are rarely
// square, so each axis uses its own scale.
func (v view) ring(c stickfall.Vec2, radius float64, plot func(x, y int)) {
	rx := radius * v.sx
	ry := radius * v.sy
	cx, cy := v.cell(c)
	if rx < 0.5 && ry < 0.5 {
		plot(cx, cy)
		return
	}
	steps := max(8, int(math.Ceil(2*math.Pi*max(rx, ry))))
	px, py := math.MinInt, math.MinInt
	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(rx*math.Cos(a)))
		y := cy + int(math.Round(ry*math.Sin(a)))
		if x == px && y == py {
			continue
		}
		plot(x, y)
		px, py = x, y
	}
}

// slopeRune picks the glyph that best follows a line of the given extent.
// Screen y grows downward, so a positive dy with a positive dx is '\'.
func slopeRune(dx, dy int) rune {
	adx, ady := abs(dx), abs(dy)
	switch {
	case ady*2 < adx:
		return '-'
	case adx*2 < ady:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// Line calls plot for every cell on the Bresenham line from (x0, y0) to
// (x1, y1), endpoints included.
func Line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
