package starfield

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/litescript/ls-skydome/internal/skyerr"
)

// Viewport is the output surface size in pixels (or terminal cells).
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Aspect returns width/height.
func (v Viewport) Aspect() float64 {
	return v.Width / v.Height
}

// Camera holds 4x4 view and projection matrices and the viewport. Matrices
// map column vectors: p' = M * p.
type Camera struct {
	View       *mat.Dense
	Projection *mat.Dense
	Viewport   Viewport
}

// NewCamera validates the matrix shapes and viewport.
func NewCamera(view, projection *mat.Dense, vp Viewport) (Camera, error) {
	for name, m := range map[string]*mat.Dense{"view": view, "projection": projection} {
		if m == nil {
			return Camera{}, skyerr.Domain("camera", "%s matrix is nil", name)
		}
		if r, c := m.Dims(); r != 4 || c != 4 {
			return Camera{}, skyerr.Domain("camera", "%s matrix is %dx%d, want 4x4", name, r, c)
		}
	}
	if err := vp.Validate(); err != nil {
		return Camera{}, err
	}
	return Camera{View: view, Projection: projection, Viewport: vp}, nil
}

// Validate rejects empty or non-finite viewports.
func (v Viewport) Validate() error {
	if err := skyerr.RequireAllFinite([]string{"viewport width", "viewport height"}, v.Width, v.Height); err != nil {
		return skyerr.Domain("camera", "%v", err)
	}
	if v.Width <= 0 || v.Height <= 0 {
		return skyerr.Domain("camera", "viewport %vx%v is empty", v.Width, v.Height)
	}
	return nil
}

// Origin returns the world origin in camera space as a homogeneous 4-vector.
func (c Camera) Origin() [4]float64 {
	return transform(c.View, [4]float64{0, 0, 0, 1})
}

// LookAt builds a right-handed view matrix looking from eye toward target.
func LookAt(eye, target, up r3.Vec) *mat.Dense {
	f := r3.Unit(r3.Sub(target, eye))
	s := r3.Unit(r3.Cross(f, up))
	u := r3.Cross(s, f)
	return mat.NewDense(4, 4, []float64{
		s.X, s.Y, s.Z, -r3.Dot(s, eye),
		u.X, u.Y, u.Z, -r3.Dot(u, eye),
		-f.X, -f.Y, -f.Z, r3.Dot(f, eye),
		0, 0, 0, 1,
	})
}

// Perspective builds an OpenGL-style projection matrix. fovY is in radians.
func Perspective(fovY, aspect, near, far float64) *mat.Dense {
	f := 1 / math.Tan(fovY/2)
	nf := near - far
	return mat.NewDense(4, 4, []float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / nf, 2 * far * near / nf,
		0, 0, -1, 0,
	})
}

// DefaultCamera frames the upper sky hemisphere from outside a sphere of the
// given radius, with the horizon in the lower part of the view.
func DefaultCamera(radius float64, vp Viewport) Camera {
	eye := r3.Vec{Y: 0.3 * radius, Z: 1.6 * radius}
	target := r3.Vec{Y: 0.5 * radius}
	return Camera{
		View:       LookAt(eye, target, r3.Vec{Y: 1}),
		Projection: Perspective(60*math.Pi/180, vp.Aspect(), 0.1, 10*radius),
		Viewport:   vp,
	}
}

func transform(m *mat.Dense, p [4]float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		out[i] = m.At(i, 0)*p[0] + m.At(i, 1)*p[1] + m.At(i, 2)*p[2] + m.At(i, 3)*p[3]
	}
	return out
}

func length4(p [4]float64) float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2] + p[3]*p[3])
}
