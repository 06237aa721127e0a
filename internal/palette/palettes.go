package palette

import colorful "github.com/lucasb-eyer/go-colorful"

// Name identifies a sky palette.
type Name string

const (
	Day           Name = "day"
	Green         Name = "green"
	GreenGolden   Name = "green_golden"
	Golden        Name = "golden"
	Twilight      Name = "twilight"
	TwilightNight Name = "twilight_night"
	Night         Name = "night"
	DeepNight     Name = "deep_night"
)

// SunThresholds are the sun altitude breakpoints in degrees, highest first.
var SunThresholds = []float64{90, 50, -5, -10, -13, -16, -18, -90}

// sunAnchors binds each entry of SunThresholds to the palette shown when the
// sun sits exactly at that altitude.
var sunAnchors = []Name{
	Day,           // 90
	Green,         // 50
	Golden,        // -5
	Twilight,      // -10
	TwilightNight, // -13
	Night,         // -16
	DeepNight,     // -18
	DeepNight,     // -90
}

// paletteOrder is the declaration order of the reference palettes.
var paletteOrder = []Name{Day, Green, GreenGolden, Golden, Twilight, TwilightNight, Night, DeepNight}

// Sky colors run ground, horizon, low, mid, upper, floor highlight.
var skyHex = map[Name][StopCount]uint32{
	Day:           {0x94cbfe, 0xe3fbff, 0xc5efff, 0xb5e7ff, 0x95cbff, 0xb5e7ff},
	Green:         {0x80bfff, 0xc5eef3, 0x9cdef7, 0x78c1fd, 0x77a8ff, 0x9addfc},
	GreenGolden:   {0x5f9df3, 0xad9ed6, 0xe4ffee, 0x6ccaff, 0x5f9df3, 0x7abfff},
	Golden:        {0x4c61d1, 0xcfbee8, 0xbad5fd, 0x5c76da, 0x5c76da, 0x6f84e3},
	Twilight:      {0x18181b, 0x27272a, 0x27272a, 0x27272a, 0x27272a, 0x595959},
	TwilightNight: {0x18181b, 0x27272a, 0x27272a, 0x27272a, 0x27272a, 0x595959},
	Night:         {0x18181b, 0x27272a, 0x27272a, 0x27272a, 0x27272a, 0x595959},
	DeepNight:     {0x18181b, 0x27272a, 0x27272a, 0x27272a, 0x27272a, 0x595959},
}

var ambientHex = map[Name]uint32{
	Day:           0xa6a9ff,
	Green:         0xa6a9ff,
	GreenGolden:   0xa6a9ff,
	Golden:        0xd7a6ff,
	Twilight:      0xbfa6ff,
	TwilightNight: 0x6947bf,
	Night:         0x6947bf,
	DeepNight:     0x6947bf,
}

// FromHex converts a 24-bit 0xRRGGBB value to a color with 0..1 components.
func FromHex(h uint32) colorful.Color {
	return colorful.Color{
		R: float64((h>>16)&0xff) / 255,
		G: float64((h>>8)&0xff) / 255,
		B: float64(h&0xff) / 255,
	}
}
