// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Moon view with rise/set times, lunar distance and elongation readouts
// 0.3.0 - Year view with day-length bars, season markers, CSV export, --watch mode
// 0.2.0 - Meeus lunar theory, phase classification, IP geolocation, TOML config
// 0.1.0 - Initial release: TUI day view, sunrise/sunset engine, headless report and JSON modes
