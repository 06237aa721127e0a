// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Config file + env overrides with live reload, sky event log, catalog convert
// 0.2.0 - Moon phase, sunrise/sunset search, PNG/TIFF/JPEG export, CSS themes
// 0.1.0 - Initial release: palette blending, sky gradient, star projection, TUI sky view
