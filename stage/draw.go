package stage

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/stickfall"
)

// Editor overlay colours.
var (
	jointColor    = stickfall.Color{R: 0.4, G: 0.8, B: 1, A: 1}
	selectedColor = stickfall.Color{R: 1, G: 0.6, B: 0.2, A: 1}
	boneModeColor = stickfall.Color{R: 0.6, G: 1, B: 0.4, A: 1}
)

// whitePixel is a 1x1 white image used to draw solid shapes with a GeoM.
var whitePixel *ebiten.Image

func pixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(stickfall.ColorWhite.RGBA())
	}
	return whitePixel
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m stickfall.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// drawFrame draws a fall frame: attachments behind, skeleton, attachments
// in front.
func (s *Stage) drawFrame(dst *ebiten.Image, f stickfall.Frame) {
	o := f.Outline()
	if o.Opacity <= 0 {
		return
	}
	s.drawAttachments(dst, o.Behind, o.Opacity)
	s.drawSkeleton(dst, o, s.cfg.Stroke.WithAlpha(o.Opacity))
	s.drawAttachments(dst, o.Front, o.Opacity)
}

func (s *Stage) drawSkeleton(dst *ebiten.Image, o stickfall.Outline, c stickfall.Color) {
	w := s.cfg.StrokeWidth * float32(o.Scale)
	clr := c.RGBA()
	for _, seg := range o.Bones {
		vector.StrokeLine(dst,
			float32(seg.From.X), float32(seg.From.Y), float32(seg.To.X), float32(seg.To.Y),
			w, clr, true)
	}
	if o.HasHead {
		vector.StrokeCircle(dst, float32(o.Head.X), float32(o.Head.Y), float32(o.HeadRadius), w, clr, true)
	}
}

func (s *Stage) drawAttachments(dst *ebiten.Image, rts []stickfall.RenderTransform, opacity float64) {
	for _, rt := range rts {
		img, err := s.images.Get(rt.ImageData)
		if err != nil {
			continue
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM = geoM(rt.ImageMatrix(b.Dx(), b.Dy()))
		op.ColorScale.ScaleAlpha(float32(opacity))
		dst.DrawImage(img, op)
	}
}

// shardGeoM maps the unit pixel onto a shard's diamond: a square rotated by
// 45 degrees whose half-diagonal is half the shard size.
func shardGeoM(sh *stickfall.Shard) ebiten.GeoM {
	side := sh.Size * sh.Scale / math.Sqrt2
	var g ebiten.GeoM
	g.Translate(-0.5, -0.5)
	g.Scale(side, side)
	g.Rotate(math.Pi/4 + sh.Rotation)
	g.Translate(sh.X, sh.Y)
	return g
}

func (s *Stage) drawShatter(dst *ebiten.Image, sh *stickfall.Shatter) {
	if !sh.Visible() {
		return
	}
	base := sh.Config().Color
	for i := range sh.Shards() {
		shard := &sh.Shards()[i]
		if shard.Opacity <= 0 || !shardBounds(shard).Overlaps(dst.Bounds()) {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM = shardGeoM(shard)
		c := base.WithAlpha(shard.Opacity)
		op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		dst.DrawImage(pixel(), op)
	}
}

// drawEditor draws the editor pose with joint handles. The selected joint
// is highlighted, as is the source joint while a bone is being added.
func (s *Stage) drawEditor(dst *ebiten.Image, e *stickfall.Editor) {
	f := stickfall.Frame{
		Pose:        e.Pose(),
		Placement:   stickfall.DefaultPlacement,
		Attachments: e.Attachments(),
	}
	s.drawFrame(dst, f)

	for _, j := range e.Pose().Joints() {
		c := jointColor
		switch j.ID {
		case e.Selected():
			c = selectedColor
		case e.AddingBone():
			c = boneModeColor
		}
		vector.DrawFilledCircle(dst, float32(j.X), float32(j.Y), float32(stickfall.JointHitRadius)/2, c.RGBA(), true)
	}
}

// imageCache uploads each decoded attachment image to the GPU once.
type imageCache struct {
	decoded *stickfall.ImageCache
	images  map[string]*ebiten.Image
}

func newImageCache() *imageCache {
	return &imageCache{decoded: stickfall.NewImageCache(), images: make(map[string]*ebiten.Image)}
}

func (c *imageCache) Get(dataURL string) (*ebiten.Image, error) {
	if img, ok := c.images[dataURL]; ok {
		return img, nil
	}
	src, err := c.decoded.Get(dataURL)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	c.images[dataURL] = img
	return img, nil
}

func (c *imageCache) Len() int { return len(c.images) }

// shardBounds returns the pixel bounds of a shard's diamond.
func shardBounds(sh *stickfall.Shard) image.Rectangle {
	g := shardGeoM(sh)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		x, y := g.Apply(p[0], p[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}
