package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/logging"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/starfield"
)

// SunSource supplies the sun altitude in degrees for a sky time.
type SunSource interface {
	SunAltitude(t time.Time) float64
}

// ObserverSun computes the altitude from the solar model for an observer.
type ObserverSun struct {
	Observer astro.Observer
}

func (s ObserverSun) SunAltitude(t time.Time) float64 {
	return astro.SunAltitude(t, s.Observer)
}

// FixedSun pins the altitude, e.g. for --sun-alt.
type FixedSun float64

func (f FixedSun) SunAltitude(time.Time) float64 { return float64(f) }

// Clock maps wall time onto sky time: skyEpoch + elapsed*scale.
type Clock struct {
	mu        sync.Mutex
	skyEpoch  time.Time
	wallStart time.Time
	scale     float64
	now       func() time.Time
}

// NewClock starts a clock at skyEpoch running scale times faster than the wall.
func NewClock(skyEpoch time.Time, scale float64) *Clock {
	return newClock(skyEpoch, scale, time.Now)
}

func newClock(skyEpoch time.Time, scale float64, now func() time.Time) *Clock {
	return &Clock{skyEpoch: skyEpoch, wallStart: now(), scale: scale, now: now}
}

// Now returns the sky time and the wall seconds since the clock started. The
// latter drives twinkle so it stays smooth regardless of scale.
func (c *Clock) Now() (time.Time, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skyLocked(), c.now().Sub(c.wallStart).Seconds()
}

func (c *Clock) skyLocked() time.Time {
	elapsed := c.now().Sub(c.wallStart)
	return c.skyEpoch.Add(time.Duration(float64(elapsed) * c.scale))
}

// Scale returns the current time multiplier.
func (c *Clock) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// SetScale changes the multiplier without jumping the sky time. The wall
// start is left alone so twinkle time stays continuous.
func (c *Clock) SetScale(scale float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sky := c.skyLocked()
	elapsed := c.now().Sub(c.wallStart)
	c.scale = scale
	c.skyEpoch = sky.Add(-time.Duration(float64(elapsed) * scale))
}

// Shift moves sky time by d.
func (c *Clock) Shift(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skyEpoch = c.skyEpoch.Add(d)
}

// DriverOptions wires the engine components into a Driver.
type DriverOptions struct {
	Interpolator *palette.Interpolator // nil uses palette.Default
	Projector    *starfield.Projector
	Stars        []starfield.Star
	Observer     astro.Observer
	Sun          SunSource // nil uses ObserverSun{Observer}
	Viewport     starfield.Viewport
	Workers      int
	Logger       *logging.Logger
}

// Driver computes frames and records them in a Manager.
type Driver struct {
	mu       sync.RWMutex
	interp   *palette.Interpolator
	proj     *starfield.Projector
	camera   starfield.Camera
	stars    []starfield.Star
	observer astro.Observer
	sun      SunSource
	workers  int
	mgr      *Manager
	log      *logging.Logger
}

// NewDriver validates opts and builds the default camera for the viewport.
func NewDriver(mgr *Manager, opts DriverOptions) (*Driver, error) {
	if mgr == nil {
		return nil, errors.New("state: nil manager")
	}
	if opts.Projector == nil {
		return nil, errors.New("state: nil projector")
	}
	if opts.Interpolator == nil {
		opts.Interpolator = palette.Default()
	}
	if opts.Sun == nil {
		opts.Sun = ObserverSun{Observer: opts.Observer}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	d := &Driver{
		interp:   opts.Interpolator,
		proj:     opts.Projector,
		stars:    opts.Stars,
		observer: opts.Observer,
		sun:      opts.Sun,
		workers:  opts.Workers,
		mgr:      mgr,
		log:      opts.Logger,
	}
	if err := d.SetViewport(opts.Viewport); err != nil {
		return nil, err
	}
	return d, nil
}

// SetViewport rebuilds the camera for a new output size.
func (d *Driver) SetViewport(vp starfield.Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	cam := starfield.DefaultCamera(d.proj.Config().SphereRadius, vp)
	d.mu.Lock()
	d.camera = cam
	d.mu.Unlock()
	return nil
}

// SetSun swaps the altitude source.
func (d *Driver) SetSun(s SunSource) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sun = s
}

// SetObserver moves the observer. An ObserverSun source follows the move.
func (d *Driver) SetObserver(obs astro.Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observer = obs
	if _, ok := d.sun.(ObserverSun); ok {
		d.sun = ObserverSun{Observer: obs}
	}
}

// Stars returns the star list being projected.
func (d *Driver) Stars() []starfield.Star {
	return d.stars
}

// Compute builds a frame without recording it.
func (d *Driver) Compute(ctx context.Context, skyTime time.Time, twinkleTime float64) (*FrameState, error) {
	d.mu.RLock()
	cam, obs, sun := d.camera, d.observer, d.sun
	d.mu.RUnlock()

	alt := sun.SunAltitude(skyTime)
	colors, err := d.interp.Blend(alt)
	if err != nil {
		return nil, err
	}

	frame := starfield.ObserverFrame{
		LatitudeRad: obs.LatitudeRad(),
		DiurnalRad:  astro.DiurnalAngle(skyTime, obs.LonDeg),
	}
	stars, err := d.proj.ProjectAll(ctx, d.stars, frame, cam, twinkleTime, d.workers)
	if err != nil {
		return nil, err
	}

	return &FrameState{
		SkyTime:   skyTime,
		SunAltDeg: alt,
		Observer:  frame,
		Colors:    colors,
		Stars:     stars,
		Moon:      astro.Moon(skyTime),
	}, nil
}

// Step computes a frame and records it, or records the error.
func (d *Driver) Step(ctx context.Context, skyTime time.Time, twinkleTime float64) (*FrameState, error) {
	start := time.Now()
	fs, err := d.Compute(ctx, skyTime, twinkleTime)
	dur := time.Since(start)
	if err != nil {
		d.log.Warn("frame skipped: %v", err)
		d.mgr.Update(nil, dur, err)
		return nil, err
	}
	d.mgr.Update(fs, dur, nil)
	d.log.Debug("frame %d: sun %.2f° %s->%s t=%.3f, %d visible, %d culled in %v",
		fs.Number, fs.SunAltDeg, fs.Colors.From, fs.Colors.To, fs.Colors.T,
		len(fs.Stars.Visible), fs.Stars.Culled, dur)
	return fs, nil
}

// Run steps once immediately and then on every refresh tick until ctx ends.
// Changes to the manager's refresh interval take effect after the next tick.
// onFrame, if set, is called after each step.
func (d *Driver) Run(ctx context.Context, clock *Clock, onFrame func(*FrameState, error)) {
	step := func() {
		sky, tw := clock.Now()
		fs, err := d.Step(ctx, sky, tw)
		if onFrame != nil && ctx.Err() == nil {
			onFrame(fs, err)
		}
	}
	step()

	interval := d.mgr.RefreshInterval()
	if interval <= 0 {
		interval = DefaultConfig().RefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Debug("render loop shutting down")
			return
		case <-ticker.C:
			step()
			if iv := d.mgr.RefreshInterval(); iv > 0 && iv != interval {
				interval = iv
				ticker.Reset(interval)
			}
		}
	}
}
