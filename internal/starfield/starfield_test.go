package starfield

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-skydome/internal/skyerr"
	"github.com/litescript/ls-skydome/internal/spectral"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const deg = math.Pi / 180

var testViewport = Viewport{Width: 800, Height: 600}

func identityCamera(t *testing.T) Camera {
	t.Helper()
	view := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	cam, err := NewCamera(view, Perspective(60*deg, testViewport.Aspect(), 0.1, 100), testViewport)
	require.NoError(t, err)
	return cam
}

func newProjector(t *testing.T) *Projector {
	t.Helper()
	p, err := NewProjector(DefaultConfig(), nil)
	require.NoError(t, err)
	return p
}

func catalogDir(raDeg, decDeg float64) r3.Vec {
	ra, dec := raDeg*deg, decDeg*deg
	return r3.Vec{X: math.Cos(dec) * math.Cos(ra), Y: -math.Sin(dec), Z: -math.Cos(dec) * math.Sin(ra)}
}

func TestLocal_PoleAltitudeEqualsLatitude(t *testing.T) {
	ncp := r3.Vec{Y: -1}
	for _, lat := range []float64{-60, -10, 0, 34.2, 51.5, 90} {
		for _, diurnal := range []float64{0, 1.1, -7.5, 100} {
			local := Local(ncp, ObserverFrame{LatitudeRad: lat * deg, DiurnalRad: diurnal})
			assert.InDelta(t, math.Sin(lat*deg), local.Y, 1e-12, "lat=%v diurnal=%v", lat, diurnal)
		}
	}
}

func TestLocal_HeightIsSineOfAltitude(t *testing.T) {
	tests := []struct {
		name            string
		ra, dec, lat    float64
		siderealDegrees float64
	}{
		{"sirius from mid-north", 101.287, -16.716, 34.2, 80},
		{"vega near zenith", 279.234, 38.784, 38.8, 279.234},
		{"southern observer", 95.988, -52.696, -33.9, 120},
		{"below horizon", 10, -60, 60, 190},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := catalogDir(tt.ra, tt.dec)
			local := Local(dir, ObserverFrame{LatitudeRad: tt.lat * deg, DiurnalRad: tt.siderealDegrees * deg})

			h := (tt.siderealDegrees - tt.ra) * deg
			lat, dec := tt.lat*deg, tt.dec*deg
			wantSinAlt := math.Sin(lat)*math.Sin(dec) + math.Cos(lat)*math.Cos(dec)*math.Cos(h)
			assert.InDelta(t, wantSinAlt, local.Y, 1e-12)
			assert.InDelta(t, 1, r3.Norm(local), 1e-12)
		})
	}
}

func TestLocal_UnnormalizedAngles(t *testing.T) {
	dir := catalogDir(45, 20)
	a := Local(dir, ObserverFrame{LatitudeRad: 0.5, DiurnalRad: 1.2})
	b := Local(dir, ObserverFrame{LatitudeRad: 0.5 + 2*math.Pi, DiurnalRad: 1.2 - 6*math.Pi})
	assert.InDelta(t, a.X, b.X, 1e-12)
	assert.InDelta(t, a.Y, b.Y, 1e-12)
	assert.InDelta(t, a.Z, b.Z, 1e-12)
}

func TestConfig_BelowHorizon(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.BelowHorizon(0.2), "the margin itself is visible")
	assert.False(t, cfg.BelowHorizon(0.9))
	assert.True(t, cfg.BelowHorizon(0.1))
	assert.True(t, cfg.BelowHorizon(math.Nextafter(0.2, 0)))
	assert.True(t, cfg.BelowHorizon(-1))
}

func TestConfig_AttenuationDecreasesWithDepth(t *testing.T) {
	cfg := DefaultConfig()
	prev := math.Inf(1)
	for depth := 0.5; depth <= 200; depth *= 1.5 {
		a := cfg.Attenuation(depth, 600)
		assert.Less(t, a, prev, "depth %v", depth)
		assert.Greater(t, a, 0.0)
		prev = a
	}
}

func TestConfig_BackFaceThreshold(t *testing.T) {
	cfg := DefaultConfig()
	// Aspect clamps to [10, 20] before weighting.
	assert.InDelta(t, 11.0/2+10*0.02, cfg.BackFaceThreshold(2, 1.33), 1e-12)
	assert.InDelta(t, 11.0/2+15*0.02, cfg.BackFaceThreshold(2, 15), 1e-12)
	assert.InDelta(t, 11.0/2+20*0.02, cfg.BackFaceThreshold(2, 40), 1e-12)
}

func TestConfig_Twinkle(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, 0.3, cfg.Twinkle(2, math.Pi/2, 0), 1e-12)
	assert.InDelta(t, 0, cfg.Twinkle(2, 0, 0), 1e-12)
	// Period is 2*pi/frequency.
	assert.InDelta(t, cfg.Twinkle(1, 0.4, 0.3), cfg.Twinkle(1, 0.4, 0.3+2*math.Pi/10), 1e-12)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.SphereRadius = 0
	assert.True(t, skyerr.IsDomain(bad.Validate()))

	bad = DefaultConfig()
	bad.AspectMin, bad.AspectMax = 20, 10
	assert.True(t, skyerr.IsDomain(bad.Validate()))

	bad = DefaultConfig()
	bad.TwinkleAmplitude = math.NaN()
	assert.True(t, skyerr.IsDomain(bad.Validate()))

	_, err := NewProjector(bad, nil)
	assert.True(t, skyerr.IsDomain(err))
}

func TestNewCamera_Validation(t *testing.T) {
	good := Perspective(1, 1, 0.1, 10)
	_, err := NewCamera(nil, good, testViewport)
	assert.True(t, skyerr.IsDomain(err))

	_, err = NewCamera(mat.NewDense(3, 3, nil), good, testViewport)
	assert.True(t, skyerr.IsDomain(err))

	_, err = NewCamera(good, good, Viewport{Width: 0, Height: 10})
	assert.True(t, skyerr.IsDomain(err))
}

func TestProject_VisibleStar(t *testing.T) {
	p := newProjector(t)
	cam := identityCamera(t)

	// At latitude 90 with no diurnal rotation, local = (-x, -y, z).
	frame := ObserverFrame{LatitudeRad: math.Pi / 2}
	star := Star{Name: "test", Dir: r3.Vec{X: 0, Y: -0.6, Z: -0.8}, Size: 2, ColorIndex: 0.65}

	attrs, visible, err := p.Project(star, frame, cam, 0)
	require.NoError(t, err)
	require.True(t, visible)

	assert.Equal(t, "test", attrs.Name)
	assert.InDelta(t, 0.6, attrs.Local.Y, 1e-12)
	assert.InDelta(t, 8, attrs.Depth, 1e-9)
	// 600 / (2*8) * 0.01 * size 2, no twinkle at phase 0 and time 0.
	assert.InDelta(t, 0.75, attrs.PointSize, 1e-9)
	assert.Equal(t, spectral.G, attrs.Class)
	gColor, _ := spectral.Default().ClassColor(spectral.G)
	assert.Equal(t, gColor, attrs.Color)

	assert.InDelta(t, 0, attrs.Screen[0], 1e-9)
	f := 1 / math.Tan(30*deg)
	assert.InDelta(t, f*6/8, attrs.Screen[1], 1e-9)
}

func TestProject_HorizonCull(t *testing.T) {
	p := newProjector(t)
	cam := identityCamera(t)
	frame := ObserverFrame{LatitudeRad: math.Pi / 2}

	low := Star{Dir: r3.Unit(r3.Vec{Y: -0.1, Z: -0.99}), Size: 1}
	_, visible, err := p.Project(low, frame, cam, 0)
	require.NoError(t, err)
	assert.False(t, visible, "local height below 0.2 is culled")

	high := Star{Dir: r3.Unit(r3.Vec{Y: -0.3, Z: -0.95}), Size: 1}
	_, visible, err = p.Project(high, frame, cam, 0)
	require.NoError(t, err)
	assert.True(t, visible)
}

func TestProject_BackFaceCull(t *testing.T) {
	p := newProjector(t)
	view := LookAt(r3.Vec{Z: 16}, r3.Vec{}, r3.Vec{Y: 1})
	cam, err := NewCamera(view, Perspective(60*deg, testViewport.Aspect(), 0.1, 100), testViewport)
	require.NoError(t, err)

	origin := cam.Origin()
	assert.InDelta(t, -16, origin[2], 1e-12)
	assert.InDelta(t, 1, origin[3], 1e-12)

	frame := ObserverFrame{LatitudeRad: math.Pi / 2}

	// local z = catalog z at this frame; the camera sits on +Z.
	near := Star{Dir: r3.Vec{Y: -0.3, Z: math.Sqrt(1 - 0.09)}, Size: 1}
	_, visible, err := p.Project(near, frame, cam, 0)
	require.NoError(t, err)
	assert.False(t, visible, "near side of the sphere faces away")

	far := Star{Dir: r3.Vec{Y: -0.3, Z: -math.Sqrt(1 - 0.09)}, Size: 1}
	attrs, visible, err := p.Project(far, frame, cam, 0)
	require.NoError(t, err)
	assert.True(t, visible)
	assert.InDelta(t, 16+10*math.Sqrt(1-0.09), attrs.Depth, 1e-9)
}

func TestProject_InvalidInput(t *testing.T) {
	p := newProjector(t)
	cam := identityCamera(t)
	good := Star{Dir: r3.Vec{Y: -0.6, Z: -0.8}, Size: 1}
	frame := ObserverFrame{LatitudeRad: math.Pi / 2}

	tests := []struct {
		name  string
		star  Star
		frame ObserverFrame
		time  float64
	}{
		{"nan direction", Star{Dir: r3.Vec{X: math.NaN()}, Size: 1}, frame, 0},
		{"inf size", Star{Dir: good.Dir, Size: math.Inf(1)}, frame, 0},
		{"nan color index", Star{Dir: good.Dir, Size: 1, ColorIndex: math.NaN()}, frame, 0},
		{"nan latitude", good, ObserverFrame{LatitudeRad: math.NaN()}, 0},
		{"inf diurnal", good, ObserverFrame{DiurnalRad: math.Inf(-1)}, 0},
		{"nan time", good, frame, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, visible, err := p.Project(tt.star, tt.frame, cam, tt.time)
			assert.False(t, visible)
			assert.True(t, skyerr.IsInvalidInput(err), "got %v", err)
		})
	}
}

func TestProject_Deterministic(t *testing.T) {
	p := newProjector(t)
	cam := DefaultCamera(10, testViewport)
	star := Star{Dir: catalogDir(88.8, 7.4), Size: 1.5, ColorIndex: 1.85, TwinklePhase: 0.7}
	frame := ObserverFrame{LatitudeRad: 0.6, DiurnalRad: 2.1}

	a, va, errA := p.Project(star, frame, cam, 12.5)
	b, vb, errB := p.Project(star, frame, cam, 12.5)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, va, vb)
	assert.Equal(t, a, b)
}

func TestProjectAll_MatchesSequential(t *testing.T) {
	p := newProjector(t)
	cam := DefaultCamera(10, testViewport)
	stars, err := GenerateField(FieldOptions{Count: 3000, Seed: 7, MinSize: 0.5, MaxSize: 2})
	require.NoError(t, err)
	stars = append(stars, Star{Name: "broken", Dir: r3.Vec{X: math.NaN()}, Size: 1})

	frame := ObserverFrame{LatitudeRad: 0.7, DiurnalRad: 1.3}

	serial, err := p.ProjectAll(context.Background(), stars, frame, cam, 4.2, 1)
	require.NoError(t, err)
	parallel, err := p.ProjectAll(context.Background(), stars, frame, cam, 4.2, 8)
	require.NoError(t, err)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("parallel frame differs (-serial +parallel):\n%s", diff)
	}
	assert.Equal(t, 1, serial.Skipped)
	assert.Equal(t, len(stars), len(serial.Visible)+serial.Culled+serial.Skipped)
	assert.NotEmpty(t, serial.Visible)
	assert.NotZero(t, serial.Culled)

	// Every visible star agrees with the single-star path.
	for _, got := range serial.Visible[:10] {
		var src Star
		for _, s := range stars {
			if s.Name == got.Name {
				src = s
				break
			}
		}
		want, ok, err := p.Project(src, frame, cam, 4.2)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestProjectAll_Errors(t *testing.T) {
	p := newProjector(t)
	cam := DefaultCamera(10, testViewport)
	stars, err := GenerateField(FieldOptions{Count: 10, Seed: 1, MinSize: 1, MaxSize: 1})
	require.NoError(t, err)

	_, err = p.ProjectAll(context.Background(), stars, ObserverFrame{LatitudeRad: math.NaN()}, cam, 0, 2)
	assert.True(t, skyerr.IsInvalidInput(err))

	_, err = p.ProjectAll(context.Background(), stars, ObserverFrame{}, cam, math.Inf(1), 2)
	assert.True(t, skyerr.IsInvalidInput(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.ProjectAll(ctx, stars, ObserverFrame{}, cam, 0, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProjectAll_Empty(t *testing.T) {
	p := newProjector(t)
	f, err := p.ProjectAll(context.Background(), nil, ObserverFrame{}, DefaultCamera(10, testViewport), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, f.Visible)
	assert.Zero(t, f.Culled)
}

func TestGenerateField(t *testing.T) {
	opts := FieldOptions{Count: 500, Seed: 42, MinSize: 0.4, MaxSize: 2}
	a, err := GenerateField(opts)
	require.NoError(t, err)
	b, err := GenerateField(opts)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same field")

	opts.Seed = 43
	c, err := GenerateField(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	for _, s := range a {
		assert.InDelta(t, 1, r3.Norm(s.Dir), 1e-12)
		assert.GreaterOrEqual(t, s.Size, opts.MinSize)
		assert.LessOrEqual(t, s.Size, opts.MaxSize)
		assert.GreaterOrEqual(t, s.TwinklePhase, 0.0)
		assert.Less(t, s.TwinklePhase, 2*math.Pi)
		assert.GreaterOrEqual(t, s.ColorIndex, -0.4)
		assert.LessOrEqual(t, s.ColorIndex, 2.0)
	}

	_, err = GenerateField(FieldOptions{Count: -1, MinSize: 1, MaxSize: 1})
	assert.Error(t, err)
	_, err = GenerateField(FieldOptions{Count: 1, MinSize: 2, MaxSize: 1})
	assert.Error(t, err)
}
