package starfield

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/spectral"
)

var (
	yAxis = r3.Vec{Y: 1}
	zAxis = r3.Vec{Z: 1}
)

// Projector turns catalog stars into render attributes. It holds no per-frame
// state and is safe for concurrent use.
type Projector struct {
	cfg    Config
	colors *spectral.Mapper
}

// NewProjector validates cfg. A nil mapper uses the reference class colors.
func NewProjector(cfg Config, colors *spectral.Mapper) (*Projector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if colors == nil {
		colors = spectral.Default()
	}
	return &Projector{cfg: cfg, colors: colors}, nil
}

// Config returns the projector's tuning.
func (p *Projector) Config() Config { return p.cfg }

// Local rotates a catalog direction into the observer's horizon frame: first
// by the diurnal angle about the catalog pole, then by latitude+90deg about Z
// so that +Y becomes the local zenith.
func Local(dir r3.Vec, frame ObserverFrame) r3.Vec {
	pos := r3.Rotate(dir, -frame.DiurnalRad, yAxis)
	return r3.Rotate(pos, frame.LatitudeRad+math.Pi/2, zAxis)
}

// Project computes the render attributes of one star for one frame. The bool
// result is false when the star is culled. Non-finite star, frame or time
// values return an InvalidInputError; callers skip the star.
func (p *Projector) Project(star Star, frame ObserverFrame, cam Camera, timeScalar float64) (StarRenderAttributes, bool, error) {
	if err := skyerr.RequireAllFinite(
		[]string{"star x", "star y", "star z", "star size", "color index", "twinkle phase"},
		star.Dir.X, star.Dir.Y, star.Dir.Z, star.Size, star.ColorIndex, star.TwinklePhase,
	); err != nil {
		return StarRenderAttributes{}, false, err
	}
	if err := frame.Validate(); err != nil {
		return StarRenderAttributes{}, false, err
	}
	if err := skyerr.RequireFinite("time", timeScalar); err != nil {
		return StarRenderAttributes{}, false, err
	}
	return p.project(star, frame, cam, cam.Origin(), timeScalar)
}

func (p *Projector) project(star Star, frame ObserverFrame, cam Camera, origin [4]float64, timeScalar float64) (StarRenderAttributes, bool, error) {
	local := Local(star.Dir, frame)
	if p.cfg.BelowHorizon(local.Y) {
		return StarRenderAttributes{}, false, nil
	}

	world := r3.Scale(p.cfg.SphereRadius, local)
	mv := transform(cam.View, [4]float64{world.X, world.Y, world.Z, 1})
	if mv[2] > origin[2]+p.cfg.BackFaceThreshold(length4(origin), cam.Viewport.Aspect()) {
		return StarRenderAttributes{}, false, nil
	}

	depth := -mv[2]
	if depth <= 0 {
		// At or behind the eye; no meaningful size.
		return StarRenderAttributes{}, false, nil
	}

	clip := transform(cam.Projection, mv)
	if clip[3] == 0 {
		return StarRenderAttributes{}, false, nil
	}

	class, err := p.colors.ClassFor(star.ColorIndex)
	if err != nil {
		return StarRenderAttributes{}, false, err
	}
	color, _ := p.colors.ClassColor(class)

	size := star.Size*p.cfg.Attenuation(depth, cam.Viewport.Height) +
		p.cfg.Twinkle(star.Size, star.TwinklePhase, timeScalar)

	return StarRenderAttributes{
		Name:         star.Name,
		Screen:       [2]float64{clip[0] / clip[3], clip[1] / clip[3]},
		Depth:        depth,
		PointSize:    size,
		Color:        color,
		Class:        class,
		TwinklePhase: star.TwinklePhase,
		Local:        local,
	}, true, nil
}
