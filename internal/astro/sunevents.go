package astro

import (
	"errors"
	"math"
	"sort"
	"time"
)

// SunriseAltitude is the altitude of the Sun's center at apparent sunrise and
// sunset, accounting for refraction and the solar semi-diameter.
const SunriseAltitude = -0.833

// Errors for sun event calculations.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for sun event calculation")
	ErrBadStep             = errors.New("sample step must be positive")
)

// AltitudeSample is the Sun's altitude at an instant.
type AltitudeSample struct {
	Time   time.Time
	AltDeg float64
}

// Crossing is an instant where the Sun passes a threshold altitude.
type Crossing struct {
	Time   time.Time
	AltDeg float64 // threshold crossed
	Rising bool
}

// SolarDay is the rise-transit-set cycle of the Sun.
type SolarDay struct {
	Rise        time.Time // zero if the Sun was already up or never rises
	Transit     time.Time // time of maximum altitude
	Set         time.Time // zero if the Sun does not set in the window
	MaxAltitude float64
	PolarDay    bool // never sets
	PolarNight  bool // never rises
}

// SampleSunAltitude samples the Sun's altitude every step over [start, start+span].
func SampleSunAltitude(obs Observer, start time.Time, span, step time.Duration) ([]AltitudeSample, error) {
	if step <= 0 {
		return nil, ErrBadStep
	}
	n := int(span/step) + 1
	if n < 3 {
		return nil, ErrInsufficientSamples
	}
	samples := make([]AltitudeSample, n)
	for i := range samples {
		t := start.Add(time.Duration(i) * step)
		samples[i] = AltitudeSample{Time: t, AltDeg: SunAltitude(t, obs)}
	}
	return samples, nil
}

// SunCrossings finds every crossing of the given threshold altitudes within the
// window, ordered by time. With palette breakpoints as thresholds this lists
// the upcoming sky transitions.
func SunCrossings(obs Observer, start time.Time, span, step time.Duration, thresholds []float64) ([]Crossing, error) {
	samples, err := SampleSunAltitude(obs, start, span, step)
	if err != nil {
		return nil, err
	}
	return crossings(samples, thresholds), nil
}

func crossings(samples []AltitudeSample, thresholds []float64) []Crossing {
	var out []Crossing
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		for _, th := range thresholds {
			switch {
			case prev.AltDeg <= th && curr.AltDeg > th:
				out = append(out, Crossing{
					Time:   interpolateCrossing(prev.Time, curr.Time, prev.AltDeg, curr.AltDeg, th),
					AltDeg: th,
					Rising: true,
				})
			case prev.AltDeg > th && curr.AltDeg <= th:
				out = append(out, Crossing{
					Time:   interpolateCrossing(prev.Time, curr.Time, prev.AltDeg, curr.AltDeg, th),
					AltDeg: th,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// SunDay computes sunrise, solar transit and sunset in the 24 hours after
// start, sampling every 10 minutes.
func SunDay(obs Observer, start time.Time) (SolarDay, error) {
	samples, err := SampleSunAltitude(obs, start, 24*time.Hour, 10*time.Minute)
	if err != nil {
		return SolarDay{}, err
	}
	return solarDay(samples), nil
}

func solarDay(samples []AltitudeSample) SolarDay {
	minAlt, maxAlt := 90.0, -90.0
	maxIdx := 0
	for i, s := range samples {
		if s.AltDeg < minAlt {
			minAlt = s.AltDeg
		}
		if s.AltDeg > maxAlt {
			maxAlt = s.AltDeg
			maxIdx = i
		}
	}

	transit, peak := refineMaximum(samples, maxIdx)

	if minAlt > SunriseAltitude {
		return SolarDay{Transit: transit, MaxAltitude: peak, PolarDay: true}
	}
	if maxAlt < SunriseAltitude {
		return SolarDay{Transit: transit, MaxAltitude: peak, PolarNight: true}
	}

	day := SolarDay{Transit: transit, MaxAltitude: peak}
	for _, c := range crossings(samples, []float64{SunriseAltitude}) {
		switch {
		case c.Rising && day.Rise.IsZero():
			day.Rise = c.Time
		case !c.Rising && day.Set.IsZero() && c.Time.After(day.Rise):
			day.Set = c.Time
		}
	}
	return day
}

// refineMaximum fits a parabola through the samples around idx.
func refineMaximum(samples []AltitudeSample, idx int) (time.Time, float64) {
	if idx == 0 || idx == len(samples)-1 {
		return samples[idx].Time, samples[idx].AltDeg
	}

	// Normalized time: t = -1 (prev), t = 0 (max), t = +1 (next)
	y0 := samples[idx-1].AltDeg
	y1 := samples[idx].AltDeg
	y2 := samples[idx+1].AltDeg

	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	// Parabola must open downward
	if a >= 0 {
		return samples[idx].Time, y1
	}

	tMax := math.Max(-1, math.Min(1, -b/(2*a)))

	dt := samples[idx].Time.Sub(samples[idx-1].Time)
	return samples[idx].Time.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when altitude crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	fraction := (threshold - el1) / (el2 - el1)
	fraction = math.Max(0, math.Min(1, fraction))

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}
