package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/catalog"
	"github.com/litescript/ls-skydome/internal/config"
	"github.com/litescript/ls-skydome/internal/palette"
	"github.com/litescript/ls-skydome/internal/render"
	"github.com/litescript/ls-skydome/internal/starfield"
	"github.com/litescript/ls-skydome/internal/state"
	"github.com/litescript/ls-skydome/internal/theme"
)

// Subcommand flags
var (
	altFlag     float64
	cssSelector string
	starsJSON   bool
	starsAll    bool
	renderOut   string
	renderW     int
	renderH     int
	sunHours    time.Duration
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the blended sky colors for a sun altitude",
	Long: `Prints the six sky stops and the ambient color blended for a sun altitude.
Without --alt the altitude is computed for the observer at --at.`,
	RunE: runPalette,
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the sky colors as CSS custom properties",
	RunE:  runCSS,
}

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "List the stars visible to the observer",
	RunE:  runStars,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the sky to an image file (.png, .tif, .jpg)",
	RunE:  runRender,
}

var moonCmd = &cobra.Command{
	Use:   "moon",
	Short: "Print the Moon's position and phase",
	RunE:  runMoon,
}

var sunCmd = &cobra.Command{
	Use:   "sun",
	Short: "Print sunrise, transit, sunset and palette threshold crossings",
	RunE:  runSun,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Star catalog tools",
}

var catalogConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a catalog between YAML, compressed YAML and SQLite",
	Long: `Reads, validates and rewrites a star catalog. Formats follow the file
extension: .yaml, .yaml.gz, .yaml.zst, .db/.sqlite. Use "builtin" as the input
to export the built-in bright star list.`,
	Args: cobra.ExactArgs(2),
	RunE: runCatalogConvert,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Encode(cmd.OutOrStdout(), cfg)
	},
}

func addCommands(root *cobra.Command) {
	for _, c := range []*cobra.Command{paletteCmd, cssCmd} {
		c.Flags().Float64Var(&altFlag, "alt", 0, "Sun altitude in degrees (default: computed)")
	}
	cssCmd.Flags().StringVar(&cssSelector, "selector", ":root", "CSS selector for the rule")

	starsCmd.Flags().BoolVar(&starsJSON, "json", false, "Output JSON")
	starsCmd.Flags().BoolVar(&starsAll, "all", false, "Include generated field stars")

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "sky.png", "Output file")
	renderCmd.Flags().IntVar(&renderW, "width", 0, "Image width (default: config)")
	renderCmd.Flags().IntVar(&renderH, "height", 0, "Image height (default: config)")

	sunCmd.Flags().DurationVar(&sunHours, "span", 24*time.Hour, "Search window for threshold crossings")

	catalogCmd.AddCommand(catalogConvertCmd)
	root.AddCommand(paletteCmd, cssCmd, starsCmd, renderCmd, moonCmd, sunCmd, catalogCmd, configCmd)
}

// sunAltitude returns --alt if given, else the observer's computed altitude.
func sunAltitude(cmd *cobra.Command) (float64, time.Time, error) {
	t, err := skyTime()
	if err != nil {
		return 0, time.Time{}, err
	}
	if cmd.Flags().Changed("alt") {
		return altFlag, t, nil
	}
	return astro.SunAltitude(t, cfg.Observer), t, nil
}

func runPalette(cmd *cobra.Command, args []string) error {
	alt, _, err := sunAltitude(cmd)
	if err != nil {
		return err
	}
	set, err := palette.Default().Blend(alt)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sun %+.2f°  %s → %s  t=%.3f  dominant %s\n", alt, set.From, set.To, set.T, set.Dominant())
	for i, c := range set.Stops() {
		fmt.Fprintf(out, "  %-8s %s\n", palette.Stop(i), c.Clamped().Hex())
	}
	fmt.Fprintf(out, "  %-8s %s\n", "ambient", set.Ambient.Clamped().Hex())
	return nil
}

func runCSS(cmd *cobra.Command, args []string) error {
	alt, _, err := sunAltitude(cmd)
	if err != nil {
		return err
	}
	set, err := palette.Default().Blend(alt)
	if err != nil {
		return err
	}
	return theme.WriteCSS(cmd.OutOrStdout(), cssSelector, theme.CSSVariables(set))
}

// computeFrame builds an engine and computes one frame at --at.
func computeFrame(cmd *cobra.Command, vp starfield.Viewport) (*engine, *state.FrameState, error) {
	t, err := skyTime()
	if err != nil {
		return nil, nil, err
	}
	eng, err := newEngine(cmd.Context(), cfg, logger, vp)
	if err != nil {
		return nil, nil, err
	}
	f, err := eng.driver.Step(cmd.Context(), t, 0)
	if err != nil {
		return nil, nil, err
	}
	return eng, f, nil
}

type starRow struct {
	Name      string  `json:"name"`
	AltDeg    float64 `json:"alt_deg"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	PointSize float64 `json:"point_size"`
	Class     string  `json:"class"`
	Color     string  `json:"color"`
}

func runStars(cmd *cobra.Command, args []string) error {
	_, f, err := computeFrame(cmd, cfg.Render.Viewport())
	if err != nil {
		return err
	}

	rows := make([]starRow, 0, len(f.Stars.Visible))
	for _, s := range f.Stars.Visible {
		if !starsAll && strings.HasPrefix(s.Name, starfield.FieldNamePrefix) {
			continue
		}
		rows = append(rows, starRow{
			Name:      s.Name,
			AltDeg:    math.Asin(max(-1, min(1, s.Local.Y))) * 180 / math.Pi,
			X:         s.Screen[0],
			Y:         s.Screen[1],
			PointSize: s.PointSize,
			Class:     string(s.Class),
			Color:     s.Color.Clamped().Hex(),
		})
	}

	out := cmd.OutOrStdout()
	if starsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	fmt.Fprintf(out, "%s  sun %+.2f°  %d visible, %d culled\n",
		f.SkyTime.UTC().Format(time.RFC3339), f.SunAltDeg, len(f.Stars.Visible), f.Stars.Culled)
	for _, r := range rows {
		fmt.Fprintf(out, "  %-16s alt %6.2f°  size %4.2f  %s %s\n", r.Name, r.AltDeg, r.PointSize, r.Class, r.Color)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := cfg.Render
	if renderW > 0 {
		opts.Width = renderW
	}
	if renderH > 0 {
		opts.Height = renderH
	}
	if _, err := render.FormatFor(renderOut); err != nil {
		return err
	}

	eng, f, err := computeFrame(cmd, opts.Viewport())
	if err != nil {
		return err
	}
	r, err := render.New(eng.comp, opts)
	if err != nil {
		return err
	}
	img, err := r.Render(cmd.Context(), render.Scene{Colors: f.Colors, Stars: f.Stars.Visible})
	if err != nil {
		return err
	}
	if err := render.WriteFile(renderOut, img); err != nil {
		return err
	}
	logger.Info("wrote %s (%dx%d, sun %+.2f°, %d stars)", renderOut, opts.Width, opts.Height, f.SunAltDeg, len(f.Stars.Visible))
	return nil
}

func runMoon(cmd *cobra.Command, args []string) error {
	t, err := skyTime()
	if err != nil {
		return err
	}
	m := astro.Moon(t)
	pos := astro.EquatorialToHorizontal(astro.SkyCoord{RAdeg: m.RAdeg, DecDeg: m.DecDeg}, cfg.Observer, t)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", t.UTC().Format(time.RFC3339), cfg.Observer.Name)
	fmt.Fprintf(out, "  phase        %s (%.1f°)\n", m.Phase, m.PhaseAngleDeg)
	fmt.Fprintf(out, "  illumination %.0f%%\n", m.Illumination*100)
	fmt.Fprintf(out, "  ra/dec       %.2f° %+.2f°\n", m.RAdeg, m.DecDeg)
	fmt.Fprintf(out, "  az/alt       %.2f° %+.2f°\n", pos.AzDeg, pos.ElDeg)
	return nil
}

func runSun(cmd *cobra.Command, args []string) error {
	t, err := skyTime()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	obs := cfg.Observer

	day, err := astro.SunDay(obs, t)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s  %s (%.4f, %.4f)\n", t.UTC().Format(time.RFC3339), obs.Name, obs.LatDeg, obs.LonDeg)
	switch {
	case day.PolarDay:
		fmt.Fprintln(out, "  polar day: the sun stays up")
	case day.PolarNight:
		fmt.Fprintln(out, "  polar night: the sun stays down")
	default:
		fmt.Fprintf(out, "  rise     %s\n", formatEventTime(day.Rise))
		fmt.Fprintf(out, "  set      %s\n", formatEventTime(day.Set))
	}
	fmt.Fprintf(out, "  transit  %s  (%+.2f°)\n", formatEventTime(day.Transit), day.MaxAltitude)

	// Interior breakpoints only; ±90 are never crossed.
	var thresholds []float64
	for _, bp := range palette.SunThresholds {
		if math.Abs(bp) < 90 {
			thresholds = append(thresholds, bp)
		}
	}
	crossings, err := astro.SunCrossings(obs, t, sunHours, 5*time.Minute, thresholds)
	if err != nil {
		return err
	}
	interp := palette.Default()
	for _, c := range crossings {
		dir := "setting"
		if c.Rising {
			dir = "rising"
		}
		set, err := interp.Blend(c.AltDeg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s  %+6.1f° %-7s %s\n", formatEventTime(c.Time), c.AltDeg, dir, set.Dominant())
	}
	return nil
}

func formatEventTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func runCatalogConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	var (
		cat astro.StarCatalog
		err error
	)
	if in == "builtin" {
		cat = astro.DefaultStarCatalog()
	} else if cat, err = catalog.Load(cmd.Context(), in); err != nil {
		return err
	}
	if err := catalog.Save(cmd.Context(), out, cat); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d stars to %s (%s)\n", len(cat.Stars), out, catalog.DetectFormat(out))
	return nil
}
