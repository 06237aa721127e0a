package astro

import (
	"math"
	"time"
)

// PhaseName identifies a lunar phase.
type PhaseName string

const (
	NewMoon        PhaseName = "new_moon"
	WaxingCrescent PhaseName = "waxing_crescent"
	FirstQuarter   PhaseName = "first_quarter"
	WaxingGibbous  PhaseName = "waxing_gibbous"
	FullMoon       PhaseName = "full_moon"
	WaningGibbous  PhaseName = "waning_gibbous"
	ThirdQuarter   PhaseName = "third_quarter"
	WaningCrescent PhaseName = "waning_crescent"
)

// PhaseTolerance is the half-width in radians of the new, quarter and full
// bands around 0, pi/2, pi and 3pi/2.
const PhaseTolerance = 0.1

type phaseBand struct {
	name       PhaseName
	start, end float64 // radians, [start, end)
}

var phaseBands = []phaseBand{
	{NewMoon, -PhaseTolerance, PhaseTolerance},
	{WaxingCrescent, PhaseTolerance, math.Pi/2 - PhaseTolerance},
	{FirstQuarter, math.Pi/2 - PhaseTolerance, math.Pi/2 + PhaseTolerance},
	{WaxingGibbous, math.Pi/2 + PhaseTolerance, math.Pi - PhaseTolerance},
	{FullMoon, math.Pi - PhaseTolerance, math.Pi + PhaseTolerance},
	{WaningGibbous, math.Pi + PhaseTolerance, 3*math.Pi/2 - PhaseTolerance},
	{ThirdQuarter, 3*math.Pi/2 - PhaseTolerance, 3*math.Pi/2 + PhaseTolerance},
	{WaningCrescent, 3*math.Pi/2 + PhaseTolerance, 2*math.Pi - PhaseTolerance},
}

// MoonPhase classifies a phase angle in degrees (0 = new, 180 = full, waxing
// below 180). Any finite angle is accepted and wrapped; the last band before a
// full turn is new moon again.
func MoonPhase(phaseAngleDeg float64) PhaseName {
	rad := degToRad(normalizeAngle360(phaseAngleDeg))
	if rad >= 2*math.Pi-PhaseTolerance {
		rad -= 2 * math.Pi
	}
	for _, b := range phaseBands {
		if rad >= b.start && rad < b.end {
			return b.name
		}
	}
	return NewMoon
}

// Illumination returns the illuminated fraction of the lunar disk, 0..1.
func Illumination(phaseAngleDeg float64) float64 {
	return (1 - math.Cos(degToRad(phaseAngleDeg))) / 2
}

// MoonState is the Moon's position and phase at an instant.
type MoonState struct {
	RAdeg, DecDeg float64
	PhaseAngleDeg float64 // elongation east of the Sun along the ecliptic, 0-360
	Phase         PhaseName
	Illumination  float64
}

// Moon computes a low-precision lunar position (about 0.3 degrees) and phase.
func Moon(t time.Time) MoonState {
	T := julianCenturies(t)
	d := T * 36525.0

	// Mean longitude, mean anomaly, argument of latitude
	L := normalizeAngle360(218.316 + 13.176396*d)
	M := degToRad(normalizeAngle360(134.963 + 13.064993*d))
	F := degToRad(normalizeAngle360(93.272 + 13.229350*d))

	lon := normalizeAngle360(L + 6.289*math.Sin(M))
	lat := 5.128 * math.Sin(F)

	ra, dec := eclipticToEquatorial(lon, lat, trueObliquity(T))
	phase := normalizeAngle360(lon - sunApparentLongitude(T))

	return MoonState{
		RAdeg:         ra,
		DecDeg:        dec,
		PhaseAngleDeg: phase,
		Phase:         MoonPhase(phase),
		Illumination:  Illumination(phase),
	}
}
