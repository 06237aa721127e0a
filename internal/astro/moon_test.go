package astro

import (
	"math"
	"testing"
	"time"
)

func TestMoonPhase(t *testing.T) {
	tol := radToDeg(PhaseTolerance)

	tests := []struct {
		deg  float64
		want PhaseName
	}{
		{0, NewMoon},
		{tol - 0.01, NewMoon},
		{tol + 0.01, WaxingCrescent},
		{45, WaxingCrescent},
		{90, FirstQuarter},
		{90 - tol + 0.01, FirstQuarter},
		{135, WaxingGibbous},
		{180, FullMoon},
		{180 + tol - 0.01, FullMoon},
		{225, WaningGibbous},
		{270, ThirdQuarter},
		{315, WaningCrescent},
		{360 - tol + 0.01, NewMoon},
		{359.99, NewMoon},
		{360, NewMoon},
		{-90, ThirdQuarter},
		{540, FullMoon},
	}

	for _, tt := range tests {
		got := MoonPhase(tt.deg)
		if got != tt.want {
			t.Errorf("MoonPhase(%v) = %s, want %s", tt.deg, got, tt.want)
		}
	}
}

func TestIllumination(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, 0.5},
		{180, 1},
		{270, 0.5},
		{360, 0},
	}

	for _, tt := range tests {
		got := Illumination(tt.deg)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Illumination(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestMoon_KnownPhases(t *testing.T) {
	tests := []struct {
		name  string
		time  time.Time
		want  PhaseName
		illum func(float64) bool
	}{
		{
			name:  "full moon 2024-04-23",
			time:  time.Date(2024, 4, 23, 23, 49, 0, 0, time.UTC),
			want:  FullMoon,
			illum: func(f float64) bool { return f > 0.95 },
		},
		{
			name:  "new moon 2024-04-08 (eclipse)",
			time:  time.Date(2024, 4, 8, 18, 21, 0, 0, time.UTC),
			want:  NewMoon,
			illum: func(f float64) bool { return f < 0.05 },
		},
		{
			name:  "first quarter 2024-04-15",
			time:  time.Date(2024, 4, 15, 19, 13, 0, 0, time.UTC),
			want:  FirstQuarter,
			illum: func(f float64) bool { return f > 0.4 && f < 0.6 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Moon(tt.time)
			if m.Phase != tt.want {
				t.Errorf("Moon().Phase = %s (angle %.1f°), want %s", m.Phase, m.PhaseAngleDeg, tt.want)
			}
			if !tt.illum(m.Illumination) {
				t.Errorf("Moon().Illumination = %.3f out of range", m.Illumination)
			}
		})
	}
}

func TestMoon_PositionNearEcliptic(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 30; day++ {
		m := Moon(start.AddDate(0, 0, day))
		// Ecliptic latitude is at most ~5.1°, so |Dec| stays within obliquity + 5.2.
		if math.Abs(m.DecDeg) > 23.44+5.2 {
			t.Errorf("day %d: Moon Dec = %.2f°", day, m.DecDeg)
		}
		if m.RAdeg < 0 || m.RAdeg >= 360 {
			t.Errorf("day %d: Moon RA out of range: %v", day, m.RAdeg)
		}
	}
}
