// Package render rasterizes one sky frame into an image: the vertical sky
// gradient, the ground glow over the lower half, and the visible stars as soft
// discs.
package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skydome/internal/gradient"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/starfield"
)

// Options controls output size and parallelism.
type Options struct {
	Width   int `yaml:"width" validate:"gt=0"`
	Height  int `yaml:"height" validate:"gt=0"`
	Workers int `yaml:"workers" validate:"gte=0"` // 0 uses GOMAXPROCS
}

// DefaultOptions renders a 1280x720 frame.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720}
}

// Viewport returns the starfield viewport matching the output image.
func (o Options) Viewport() starfield.Viewport {
	return starfield.Viewport{Width: float64(o.Width), Height: float64(o.Height)}
}

// Scene is everything drawn in one frame.
type Scene struct {
	Colors palette.BlendedColorSet
	Stars  []starfield.StarRenderAttributes
}

// Renderer draws scenes. It is safe for concurrent use.
type Renderer struct {
	comp *gradient.Compositor
	opts Options
}

// New validates opts. A nil compositor uses the reference windows.
func New(comp *gradient.Compositor, opts Options) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if comp == nil {
		comp = gradient.Default()
	}
	return &Renderer{comp: comp, opts: opts}, nil
}

// Options returns the renderer's options with defaults applied.
func (r *Renderer) Options() Options { return r.opts }

// Render draws the background in parallel row bands, then the stars.
func (r *Renderer) Render(ctx context.Context, scene Scene) (*image.RGBA, error) {
	w, h := r.opts.Width, r.opts.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	band := (h + r.opts.Workers - 1) / r.opts.Workers
	g, ctx := errgroup.WithContext(ctx)
	for y0 := 0; y0 < h; y0 += band {
		y0 := y0
		y1 := min(y0+band, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.background(img, scene.Colors, y0, y1)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range scene.Stars {
		drawStar(img, s)
	}
	return img, nil
}

// background fills rows [y0, y1). Row 0 is the top of the sky (v = 1).
func (r *Renderer) background(img *image.RGBA, set palette.BlendedColorSet, y0, y1 int) error {
	w, h := r.opts.Width, r.opts.Height
	row := make([]colorful.Color, w)
	for y := y0; y < y1; y++ {
		if err := ShadeRow(r.comp, set, y, h, row); err != nil {
			return err
		}
		for x, c := range row {
			img.SetRGBA(x, y, toRGBA(c))
		}
	}
	return nil
}

// ShadeRow fills dst with the background of row y of a surface len(dst)
// wide and height tall: the sky gradient, with the ground glow composited
// over the bottom half.
func ShadeRow(comp *gradient.Compositor, set palette.BlendedColorSet, y, height int, dst []colorful.Color) error {
	v := SkyCoordinate(y, height)
	sky, err := comp.GradientAt(v, set)
	if err != nil {
		return err
	}
	w := len(dst)
	for x := range dst {
		c := sky
		if v < 0.5 {
			u := (float64(x) + 0.5) / float64(w)
			glow, err := comp.GroundGlowAt(u, (0.5-v)*2, set.Floor)
			if err != nil {
				return err
			}
			c = over(c, glow.Color, glow.Alpha)
		}
		dst[x] = c
	}
	return nil
}

// SkyCoordinate maps an image row to the gradient's vertical coordinate.
func SkyCoordinate(row, height int) float64 {
	if height <= 1 {
		return 1
	}
	return 1 - float64(row)/float64(height-1)
}

// ScreenToPixel maps normalized device coordinates to pixel coordinates.
func ScreenToPixel(ndc [2]float64, width, height int) (float64, float64) {
	return (ndc[0] + 1) / 2 * float64(width), (1 - ndc[1]) / 2 * float64(height)
}

func drawStar(img *image.RGBA, s starfield.StarRenderAttributes) {
	if s.PointSize <= 0 {
		return
	}
	b := img.Bounds()
	cx, cy := ScreenToPixel(s.Screen, b.Dx(), b.Dy())
	radius := math.Max(s.PointSize/2, 0.5)

	x0 := max(int(math.Floor(cx-radius)), b.Min.X)
	x1 := min(int(math.Ceil(cx+radius)), b.Max.X-1)
	y0 := max(int(math.Floor(cy-radius)), b.Min.Y)
	y1 := min(int(math.Ceil(cy+radius)), b.Max.Y-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d > radius {
				continue
			}
			alpha := 1 - d/radius
			bg := fromRGBA(img.RGBAAt(x, y))
			img.SetRGBA(x, y, toRGBA(over(bg, s.Color, alpha)))
		}
	}
}

func over(dst, src colorful.Color, alpha float64) colorful.Color {
	switch {
	case alpha <= 0:
		return dst
	case alpha >= 1:
		return src
	}
	return dst.BlendRgb(src, alpha)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
