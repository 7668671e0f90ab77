// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Websocket frame stream, Prometheus metrics, viper config files
// 0.2.0 - Mouse picking, hover tooltips, info panel, shooting stars
// 0.1.0 - Initial release: orrery TUI, camera focus transitions, headless summary
