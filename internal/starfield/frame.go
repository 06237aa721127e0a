package starfield

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-skydome/internal/skyerr"
)

// Frame is the projection of a whole catalog for one instant.
type Frame struct {
	Time    float64
	Visible []StarRenderAttributes // catalog order
	Culled  int
	Skipped int // stars with non-finite catalog values
}

type slot struct {
	attrs   StarRenderAttributes
	visible bool
	invalid bool
}

// minChunk keeps small catalogs on a single goroutine.
const minChunk = 256

// ProjectAll projects every star into a fresh Frame. Stars with invalid values
// are counted in Skipped and do not abort the frame; an invalid frame or time
// does. workers <= 0 uses GOMAXPROCS. Output order matches the input.
func (p *Projector) ProjectAll(ctx context.Context, stars []Star, frame ObserverFrame, cam Camera, timeScalar float64, workers int) (*Frame, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if err := skyerr.RequireFinite("time", timeScalar); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	slots := make([]slot, len(stars))
	origin := cam.Origin()

	chunk := (len(stars) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(stars); start += chunk {
		start := start
		end := min(start+chunk, len(stars))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if i%minChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				slots[i] = p.projectOne(stars[i], frame, cam, origin, timeScalar)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Frame{Time: timeScalar, Visible: make([]StarRenderAttributes, 0, len(stars)/2)}
	for _, s := range slots {
		switch {
		case s.invalid:
			out.Skipped++
		case s.visible:
			out.Visible = append(out.Visible, s.attrs)
		default:
			out.Culled++
		}
	}
	return out, nil
}

func (p *Projector) projectOne(star Star, frame ObserverFrame, cam Camera, origin [4]float64, timeScalar float64) slot {
	if err := skyerr.RequireAllFinite(
		[]string{"star x", "star y", "star z", "star size", "color index", "twinkle phase"},
		star.Dir.X, star.Dir.Y, star.Dir.Z, star.Size, star.ColorIndex, star.TwinklePhase,
	); err != nil {
		return slot{invalid: true}
	}
	attrs, ok, err := p.project(star, frame, cam, origin, timeScalar)
	if err != nil {
		var inv *skyerr.InvalidInputError
		return slot{invalid: errors.As(err, &inv)}
	}
	return slot{attrs: attrs, visible: ok}
}
