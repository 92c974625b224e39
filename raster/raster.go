// Package raster renders fall frames in software, for exports and headless
// runs. Strokes and shards are filled with golang.org/x/image/vector and
// attachment images are composited with golang.org/x/image/draw.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/phanxgames/stickfall"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
)

// Options controls the look of rendered frames.
type Options struct {
	Width, Height int
	// Background fills the canvas before drawing. Nil leaves it transparent.
	Background color.Color
	Stroke     stickfall.Color
	// StrokeWidth is in pose units and is multiplied by the placement scale.
	StrokeWidth float64
	// CircleSegments is the polygon resolution of the head and joint caps.
	CircleSegments int
}

// DefaultOptions returns white strokes on a dark background.
func DefaultOptions(w, h int) Options {
	return Options{
		Width:          w,
		Height:         h,
		Background:     color.RGBA{R: 0x19, G: 0x19, B: 0x23, A: 0xff},
		Stroke:         stickfall.ColorWhite,
		StrokeWidth:    3,
		CircleSegments: 32,
	}
}

// Renderer draws frames onto RGBA canvases. Attachment images are decoded
// once and cached. A Renderer is not safe for concurrent use.
type Renderer struct {
	opts   Options
	rast   *vector.Rasterizer
	images *stickfall.ImageCache
	path   path
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.CircleSegments < 8 {
		opts.CircleSegments = 8
	}
	return &Renderer{
		opts:   opts,
		rast:   vector.NewRasterizer(1, 1),
		images: stickfall.NewImageCache(),
	}
}

// Options returns the renderer options.
func (r *Renderer) Options() Options { return r.opts }

// Render draws one frame onto a fresh canvas.
func Render(f stickfall.Frame, opts Options) *image.RGBA {
	return NewRenderer(opts).Render(f)
}

// Render draws one frame onto a fresh canvas.
func (r *Renderer) Render(f stickfall.Frame) *image.RGBA {
	dst := r.NewCanvas()
	r.Draw(dst, f)
	return dst
}

// NewCanvas returns an image of the configured size filled with the
// background.
func (r *Renderer) NewCanvas() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	if r.opts.Background != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)
	}
	return dst
}

// Draw composites a frame onto dst: attachments behind the skeleton, then
// bones and the head ring, then attachments in front.
func (r *Renderer) Draw(dst draw.Image, f stickfall.Frame) {
	o := f.Outline()
	if o.Opacity <= 0 {
		return
	}
	r.drawAttachments(dst, o.Behind, o.Opacity)

	hw := r.opts.StrokeWidth * o.Scale / 2
	r.path.reset()
	for _, seg := range o.Bones {
		r.path.stroke(seg.From, seg.To, hw, r.opts.CircleSegments)
	}
	if o.HasHead {
		r.path.ring(o.Head, o.HeadRadius, hw, r.opts.CircleSegments)
	}
	r.fill(dst, r.opts.Stroke.WithAlpha(o.Opacity))

	r.drawAttachments(dst, o.Front, o.Opacity)
}

// DrawShatter draws every visible shard as a filled diamond.
func (r *Renderer) DrawShatter(dst draw.Image, s *stickfall.Shatter) {
	if !s.Visible() {
		return
	}
	base := s.Config().Color
	for i := range s.Shards() {
		sh := &s.Shards()[i]
		if sh.Opacity <= 0 {
			continue
		}
		c := sh.Corners()
		r.path.reset()
		r.path.polygon(c[:])
		r.fill(dst, base.WithAlpha(sh.Opacity))
	}
}

func (r *Renderer) drawAttachments(dst draw.Image, rts []stickfall.RenderTransform, opacity float64) {
	var opts *xdraw.Options
	if opacity < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(opacity * 0xffff)})}
	}
	for _, rt := range rts {
		img, err := r.images.Get(rt.ImageData)
		if err != nil {
			continue
		}
		b := img.Bounds()
		m := rt.ImageMatrix(b.Dx(), b.Dy()).Mul(stickfall.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
		xdraw.BiLinear.Transform(dst, f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}, img, b, xdraw.Over, opts)
	}
}

// fill rasterizes the pending path inside its bounding box and composites it
// onto dst with col.
func (r *Renderer) fill(dst draw.Image, col stickfall.Color) {
	bounds := r.path.bounds().Intersect(dst.Bounds())
	if bounds.Empty() || col.A <= 0 {
		return
	}
	r.rast.Reset(bounds.Dx(), bounds.Dy())
	r.rast.DrawOp = draw.Over
	ox, oy := float32(bounds.Min.X), float32(bounds.Min.Y)
	for _, poly := range r.path.polys {
		r.rast.MoveTo(poly[0][0]-ox, poly[0][1]-oy)
		for _, p := range poly[1:] {
			r.rast.LineTo(p[0]-ox, p[1]-oy)
		}
		r.rast.ClosePath()
	}
	r.rast.Draw(dst, bounds, image.NewUniform(col.RGBA()), image.Point{})
}

// path collects closed polygons. Filled shapes are wound counter-clockwise;
// holes clockwise so they cancel.
type path struct {
	polys [][][2]float32
}

func (p *path) reset() {
	p.polys = p.polys[:0]
}

func (p *path) add(pts [][2]float32, hole bool) {
	if (signedArea(pts) < 0) != hole {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	p.polys = append(p.polys, pts)
}

func (p *path) polygon(vs []stickfall.Vec2) {
	pts := make([][2]float32, len(vs))
	for i, v := range vs {
		pts[i] = [2]float32{float32(v.X), float32(v.Y)}
	}
	p.add(pts, false)
}

func (p *path) circle(c stickfall.Vec2, radius float64, segments int, hole bool) {
	pts := make([][2]float32, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = [2]float32{float32(c.X + radius*math.Cos(a)), float32(c.Y + radius*math.Sin(a))}
	}
	p.add(pts, hole)
}

// stroke adds a thick segment with round caps.
func (p *path) stroke(a, b stickfall.Vec2, hw float64, segments int) {
	d := b.Sub(a)
	if l := d.Len(); l > 0 {
		n := stickfall.Vec2{X: -d.Y / l * hw, Y: d.X / l * hw}
		p.polygon([]stickfall.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
	p.circle(a, hw, segments/2, false)
	p.circle(b, hw, segments/2, false)
}

// ring adds a circle outline of the given radius and half-width.
func (p *path) ring(c stickfall.Vec2, radius, hw float64, segments int) {
	p.circle(c, radius+hw, segments, false)
	if inner := radius - hw; inner > 0 {
		p.circle(c, inner, segments, true)
	}
}

func (p *path) bounds() image.Rectangle {
	if len(p.polys) == 0 {
		return image.Rectangle{}
	}
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, poly := range p.polys {
		for _, pt := range poly {
			minX, maxX = min(minX, pt[0]), max(maxX, pt[0])
			minY, maxY = min(minY, pt[1]), max(maxY, pt[1])
		}
	}
	return image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
}

func signedArea(pts [][2]float32) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return a / 2
}
