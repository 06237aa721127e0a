package astro

import (
	"math"
	"time"
)

// SunPosition calculates the apparent equatorial coordinates of the Sun.
// Uses a simplified solar ephemeris based on the Astronomical Almanac.
// Accuracy: ~0.01 degrees for RA, ~0.001 degrees for Dec.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	T := julianCenturies(t)
	return eclipticToEquatorial(sunApparentLongitude(T), 0, trueObliquity(T))
}

// SunAltitude returns the Sun's altitude in degrees for an observer. This is
// the scalar that drives the sky palette.
func SunAltitude(t time.Time, obs Observer) float64 {
	ra, dec := SunPosition(t)
	return EquatorialToHorizontal(SkyCoord{RAdeg: ra, DecDeg: dec}, obs, t).ElDeg
}

// sunApparentLongitude returns the Sun's apparent ecliptic longitude in
// degrees, corrected for aberration and nutation.
func sunApparentLongitude(T float64) float64 {
	// Mean longitude
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)

	// Mean anomaly
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	omega := 125.04 - 1934.136*T
	return normalizeAngle360(L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega)))
}

// trueObliquity returns the obliquity of the ecliptic in degrees.
func trueObliquity(T float64) float64 {
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	omega := 125.04 - 1934.136*T
	return eps0 + 0.00256*math.Cos(degToRad(omega))
}

// eclipticToEquatorial converts ecliptic longitude/latitude to RA/Dec, all in
// degrees. RA is normalized to 0-360.
func eclipticToEquatorial(lonDeg, latDeg, epsDeg float64) (raDeg, decDeg float64) {
	lon, lat, eps := degToRad(lonDeg), degToRad(latDeg), degToRad(epsDeg)

	ra := math.Atan2(math.Sin(lon)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps), math.Cos(lon))
	dec := math.Asin(clamp1(math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon)))

	return normalizeAngle360(radToDeg(ra)), radToDeg(dec)
}

// AngularSeparation calculates the angular separation between two points on the celestial sphere.
// All coordinates in degrees. Returns separation in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	ra1Rad := degToRad(ra1)
	dec1Rad := degToRad(dec1)
	ra2Rad := degToRad(ra2)
	dec2Rad := degToRad(dec2)

	// Haversine formula
	dRA := ra2Rad - ra1Rad
	dDec := dec2Rad - dec1Rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1Rad)*math.Cos(dec2Rad)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}
