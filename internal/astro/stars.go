package astro

// Star represents a cataloged star with position, brightness and color.
type Star struct {
	Name   string  `yaml:"name"`    // Common name (e.g., "Sirius", "Vega")
	RAdeg  float64 `yaml:"ra_deg"`  // Right Ascension in degrees (J2000)
	DecDeg float64 `yaml:"dec_deg"` // Declination in degrees (J2000)
	Mag    float64 `yaml:"mag"`     // Apparent visual magnitude (lower = brighter)
	BV     float64 `yaml:"bv"`      // B-V color index
}

// StarCatalog holds a collection of stars for rendering.
type StarCatalog struct {
	Stars []Star `yaml:"stars"`
}

// DefaultStarCatalog returns the built-in catalog of naked-eye bright stars.
// Coordinates are J2000; magnitudes and B-V from the Yale Bright Star Catalog.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(defaultStars))
	copy(stars, defaultStars)
	return StarCatalog{Stars: stars}
}

// Brighter returns the stars at or brighter than maxMag, preserving order.
func (c StarCatalog) Brighter(maxMag float64) StarCatalog {
	out := StarCatalog{Stars: make([]Star, 0, len(c.Stars))}
	for _, s := range c.Stars {
		if s.Mag <= maxMag {
			out.Stars = append(out.Stars, s)
		}
	}
	return out
}

// defaultStars is ordered roughly by magnitude (brightest first).
var defaultStars = []Star{
	// Magnitude < 0.5
	{"Sirius", 101.287, -16.716, -1.46, 0.00},
	{"Canopus", 95.988, -52.696, -0.74, 0.15},
	{"Arcturus", 213.915, 19.182, -0.05, 1.23},
	{"Vega", 279.235, 38.784, 0.03, 0.00},
	{"Capella", 79.172, 45.998, 0.08, 0.80},
	{"Rigel", 78.634, -8.202, 0.13, -0.03},
	{"Procyon", 114.826, 5.225, 0.34, 0.42},
	{"Achernar", 24.429, -57.237, 0.46, -0.16},
	{"Betelgeuse", 88.793, 7.407, 0.50, 1.85},
	{"Hadar", 210.956, -60.373, 0.61, -0.23},

	// Magnitude 0.5-1.0
	{"Altair", 297.696, 8.868, 0.76, 0.22},
	{"Acrux", 186.650, -63.099, 0.76, -0.24},
	{"Aldebaran", 68.980, 16.509, 0.85, 1.54},
	{"Antares", 247.352, -26.432, 0.96, 1.83},
	{"Spica", 201.298, -11.161, 0.97, -0.23},

	// Magnitude 1.0-1.5
	{"Pollux", 116.329, 28.026, 1.14, 1.00},
	{"Fomalhaut", 344.413, -29.622, 1.16, 0.09},
	{"Deneb", 310.358, 45.280, 1.25, 0.09},
	{"Mimosa", 191.930, -59.689, 1.25, -0.23},
	{"Regulus", 152.093, 11.967, 1.35, -0.11},

	// Magnitude 1.5-2.0
	{"Adhara", 104.656, -28.972, 1.50, -0.21},
	{"Castor", 113.650, 31.889, 1.58, 0.03},
	{"Gacrux", 187.791, -57.113, 1.63, 1.59},
	{"Shaula", 263.402, -37.104, 1.63, -0.22},
	{"Bellatrix", 81.283, 6.350, 1.64, -0.22},
	{"Elnath", 81.573, 28.608, 1.65, -0.13},
	{"Miaplacidus", 138.300, -69.717, 1.68, 0.07},
	{"Alnilam", 84.053, -1.202, 1.69, -0.18},
	{"Alnair", 332.058, -46.961, 1.74, -0.13},
	{"Alnitak", 85.190, -1.943, 1.77, -0.21},
	{"Alioth", 193.507, 55.960, 1.77, -0.02},
	{"Dubhe", 165.932, 61.751, 1.79, 1.07},
	{"Mirfak", 51.081, 49.861, 1.79, 0.48},
	{"Wezen", 107.098, -26.393, 1.84, 0.68},
	{"Kaus Australis", 276.043, -34.384, 1.85, -0.03},
	{"Avior", 125.629, -59.509, 1.86, 1.28},
	{"Alkaid", 206.885, 49.313, 1.86, -0.19},
	{"Sargas", 264.330, -42.998, 1.87, 0.40},
	{"Menkalinan", 89.882, 44.948, 1.90, 0.08},
	{"Atria", 252.166, -69.028, 1.92, 1.44},
	{"Alhena", 99.428, 16.399, 1.93, 0.00},
	{"Peacock", 306.412, -56.735, 1.94, -0.20},
	{"Mirzam", 95.675, -17.956, 1.98, -0.24},

	// Magnitude 2.0-2.5
	{"Alphard", 141.897, -8.659, 2.00, 1.44},
	{"Hamal", 31.793, 23.463, 2.00, 1.15},
	{"Polaris", 37.954, 89.264, 2.02, 0.60},
	{"Diphda", 10.897, -17.987, 2.02, 1.02},
	{"Nunki", 283.816, -26.297, 2.02, -0.13},
	{"Mizar", 200.981, 54.925, 2.04, 0.02},
	{"Mirach", 17.433, 35.621, 2.05, 1.58},
	{"Alpheratz", 2.097, 29.091, 2.06, -0.11},
	{"Menkent", 211.671, -36.370, 2.06, 1.01},
	{"Kochab", 222.676, 74.156, 2.08, 1.47},
	{"Rasalhague", 263.734, 12.560, 2.08, 0.15},
	{"Algieba", 154.993, 19.842, 2.08, 1.13},
	{"Saiph", 86.939, -9.670, 2.09, -0.17},
	{"Algol", 47.042, 40.957, 2.12, -0.05},
	{"Denebola", 177.265, 14.572, 2.13, 0.09},
	{"Suhail", 136.999, -43.433, 2.21, 1.66},
	{"Alphecca", 233.672, 26.715, 2.23, -0.02},
	{"Mintaka", 83.002, -0.299, 2.23, -0.22},
	{"Sadr", 305.557, 40.257, 2.23, 0.67},
	{"Eltanin", 269.152, 51.489, 2.23, 1.52},
	{"Schedar", 10.127, 56.537, 2.23, 1.17},
	{"Naos", 120.896, -40.003, 2.25, -0.27},
	{"Caph", 2.295, 59.150, 2.27, 0.38},
	{"Dschubba", 240.083, -22.622, 2.32, -0.12},
	{"Merak", 165.460, 56.382, 2.37, -0.02},
	{"Izar", 221.247, 27.074, 2.37, 0.97},
	{"Ankaa", 6.571, -42.306, 2.38, 1.09},
	{"Enif", 326.046, 9.875, 2.39, 1.52},
	{"Scheat", 345.944, 28.083, 2.42, 1.67},
	{"Sabik", 257.595, -15.725, 2.43, 0.06},
	{"Phecda", 178.458, 53.695, 2.44, 0.04},

	// Magnitude 2.5-3.0
	{"Aludra", 111.024, -29.303, 2.45, -0.08},
	{"Navi", 14.177, 60.717, 2.47, -0.15},
	{"Aljanah", 311.553, 33.970, 2.48, 1.03},
	{"Markab", 346.190, 15.205, 2.49, -0.04},
	{"Alderamin", 319.645, 62.586, 2.51, 0.22},
	{"Zosma", 168.527, 20.524, 2.56, 0.12},
	{"Arneb", 83.183, -17.822, 2.58, 0.21},
	{"Gienah", 183.952, -17.542, 2.59, -0.11},
	{"Zubeneschamali", 229.252, -9.383, 2.61, -0.11},
	{"Acrab", 241.359, -19.805, 2.62, -0.07},
	{"Sheratan", 28.660, 20.808, 2.64, 0.13},
	{"Unukalhai", 236.067, 6.426, 2.65, 1.17},
	{"Kraz", 188.597, -23.397, 2.65, 0.89},
	{"Tarazed", 296.565, 10.613, 2.72, 1.50},
	{"Porrima", 190.415, -1.449, 2.74, 0.36},
	{"Zubenelgenubi", 222.720, -16.042, 2.75, 0.15},
	{"Rastaban", 262.608, 52.301, 2.79, 0.98},
	{"Cursa", 76.963, -5.086, 2.79, 0.13},
	{"Cor Caroli", 194.007, 38.318, 2.81, -0.12},
	{"Vindemiatrix", 195.544, 10.959, 2.83, 0.93},
	{"Alcyone", 56.871, 24.105, 2.87, -0.09},
	{"Tejat", 95.740, 22.513, 2.88, 1.64},
	{"Gomeisa", 111.788, 8.289, 2.90, -0.10},
	{"Sadalsuud", 322.890, -5.571, 2.91, 0.83},
	{"Algorab", 187.466, -16.515, 2.95, -0.05},
	{"Sadalmelik", 331.446, -0.320, 2.96, 0.98},

	// Magnitude 3.0 and fainter
	{"Pherkad", 230.182, 71.834, 3.00, 0.05},
	{"Mebsuta", 100.983, 25.131, 3.06, 1.38},
	{"Albireo", 292.680, 27.960, 3.18, 1.13},
	{"Edasich", 231.232, 58.966, 3.29, 1.16},
	{"Megrez", 183.857, 57.033, 3.31, 0.08},
	{"Chertan", 168.560, 15.430, 3.33, 0.00},
	{"Muscida", 127.566, 60.718, 3.35, 0.85},
	{"Thuban", 211.097, 64.376, 3.65, -0.05},
	{"Alcor", 201.306, 54.988, 3.99, 0.16},
}
