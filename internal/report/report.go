// Package report renders engine frames for headless output: a text summary
// table, an event log and a JSON snapshot export.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
)

// SnapshotExport is the JSON-serializable representation of one frame.
type SnapshotExport struct {
	ExportedAt     time.Time     `json:"exported_at"`
	Tick           uint64        `json:"tick"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	AnimSeconds    float64       `json:"anim_seconds"`
	Camera         CameraExport  `json:"camera"`
	Control        ControlExport `json:"control"`
	Bodies         []BodyExport  `json:"bodies"`
	Events         []EventExport `json:"events,omitempty"`
}

// CameraExport is the camera pose and director state.
type CameraExport struct {
	State    string     `json:"state"`
	Target   string     `json:"target,omitempty"`
	Progress float64    `json:"progress"`
	Position astro.Vec3 `json:"position"`
	LookAt   astro.Vec3 `json:"look_at"`
}

// ControlExport is a JSON-friendly control state.
type ControlExport struct {
	Playing     bool               `json:"playing"`
	GlobalSpeed float64            `json:"global_speed"`
	Scale       float64            `json:"scale"`
	Theme       string             `json:"theme"`
	Focused     string             `json:"focused,omitempty"`
	BodySpeed   map[string]float64 `json:"body_speed"`
}

// BodyExport is one body with angles in degrees.
type BodyExport struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Kind            string     `json:"kind"`
	Parent          string     `json:"parent,omitempty"`
	OrbitalAngleDeg float64    `json:"orbital_angle_deg"`
	AxialAngleDeg   float64    `json:"axial_angle_deg"`
	TiltDeg         float64    `json:"tilt_deg"`
	Position        astro.Vec3 `json:"position"`
	Radius          float64    `json:"radius"`
}

// EventExport is one recorded simulation event.
type EventExport struct {
	Kind      string    `json:"kind"`
	Body      string    `json:"id,omitempty"`
	Tick      uint64    `json:"tick"`
	Timestamp time.Time `json:"timestamp"`
}

// ExportSnapshot converts a frame to an exportable format. Satellites are
// listed after their parent.
func ExportSnapshot(f sim.Frame, cat *catalog.Catalog, events []state.Entry, exportedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		ExportedAt:     exportedAt,
		Tick:           f.Tick,
		ElapsedSeconds: f.Elapsed.Seconds(),
		AnimSeconds:    f.AnimTime.Seconds(),
		Camera: CameraExport{
			State:    f.CameraState,
			Target:   f.CameraTarget,
			Progress: f.TransitionProgress,
			Position: f.Camera.Position,
			LookAt:   f.Camera.LookAt,
		},
		Control: ControlExport{
			Playing:     f.Control.Playing,
			GlobalSpeed: f.Control.GlobalSpeed,
			Scale:       f.Control.Scale,
			Theme:       string(f.Control.Theme),
			Focused:     string(f.Control.Focused),
			BodySpeed:   make(map[string]float64, len(f.Control.BodySpeed)),
		},
	}
	for id, v := range f.Control.BodySpeed {
		export.Control.BodySpeed[string(id)] = v
	}

	for _, t := range f.Bodies {
		b, _ := cat.Get(t.ID)
		export.Bodies = append(export.Bodies, BodyExport{
			ID:              string(t.ID),
			Name:            b.Name,
			Kind:            b.Kind.String(),
			Parent:          string(b.Parent()),
			OrbitalAngleDeg: astro.RadToDeg(t.OrbitalAngle),
			AxialAngleDeg:   astro.RadToDeg(t.AxialAngle),
			TiltDeg:         astro.RadToDeg(t.EffectiveTilt),
			Position:        t.Position,
			Radius:          t.Radius,
		})
		if s := t.Satellite; s != nil {
			var name string
			if b.Satellite != nil {
				name = b.Satellite.Name
			}
			export.Bodies = append(export.Bodies, BodyExport{
				ID:              string(s.ID),
				Name:            name,
				Kind:            catalog.KindSatellite.String(),
				Parent:          string(t.ID),
				OrbitalAngleDeg: astro.RadToDeg(s.OrbitalAngle),
				AxialAngleDeg:   astro.RadToDeg(s.AxialAngle),
				Position:        s.Position,
				Radius:          s.Radius,
			})
		}
	}

	for _, e := range events {
		export.Events = append(export.Events, EventExport{
			Kind:      string(e.Kind),
			Body:      string(e.Body),
			Tick:      e.Tick,
			Timestamp: e.Timestamp,
		})
	}

	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name       string
	Kind       string
	Orbit      float64 // degrees, wrapped to [0, 360)
	Spin       float64 // degrees, wrapped to [0, 360)
	Tilt       float64 // degrees
	Multiplier float64
	Distance   float64 // world units from the sun
}

// GenerateSummaryRows creates summary rows from a frame.
func GenerateSummaryRows(f sim.Frame, cat *catalog.Catalog) []SummaryRow {
	var rows []SummaryRow
	for _, t := range f.Bodies {
		b, ok := cat.Get(t.ID)
		if !ok {
			continue
		}
		rows = append(rows, SummaryRow{
			Name:       b.Name,
			Kind:       b.Kind.String(),
			Orbit:      wrapDeg(t.OrbitalAngle),
			Spin:       wrapDeg(t.AxialAngle),
			Tilt:       astro.RadToDeg(t.EffectiveTilt),
			Multiplier: f.Control.Multiplier(t.ID),
			Distance:   t.Position.Norm(),
		})
		if s := t.Satellite; s != nil && b.Satellite != nil {
			rows = append(rows, SummaryRow{
				Name:       b.Satellite.Name,
				Kind:       catalog.KindSatellite.String(),
				Orbit:      wrapDeg(s.OrbitalAngle),
				Spin:       wrapDeg(s.AxialAngle),
				Multiplier: f.Control.Multiplier(t.ID),
				Distance:   s.Position.Norm(),
			})
		}
	}
	return rows
}

func wrapDeg(rad float64) float64 {
	d := math.Mod(astro.RadToDeg(rad), 360)
	if d < 0 {
		d += 360
	}
	return d
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, f sim.Frame, cat *catalog.Catalog) {
	rows := GenerateSummaryRows(f, cat)

	play := "playing"
	if !f.Control.Playing {
		play = "paused"
	}
	fmt.Fprintf(w, "Orrery @ tick %d (T+%s, %s, %.1fx speed, %.1fx scale)\n",
		f.Tick, f.Elapsed.Round(time.Millisecond), play, f.Control.GlobalSpeed, f.Control.Scale)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	// Header
	fmt.Fprintf(w, "%-10s %-9s %8s %8s %7s %6s %10s\n",
		"Body", "Kind", "Orbit°", "Spin°", "Tilt°", "Mult", "Distance")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	// Rows
	for _, r := range rows {
		fmt.Fprintf(w, "%-10s %-9s %8.1f %8.1f %7.2f %5.1fx %10.2f\n",
			truncateStr(r.Name, 10),
			r.Kind,
			r.Orbit,
			r.Spin,
			r.Tilt,
			r.Multiplier,
			r.Distance,
		)
	}

	camera := f.CameraState
	if f.CameraTarget != "" {
		camera += " → " + f.CameraTarget
	}
	fmt.Fprintf(w, "\nCamera: %s  Total: %d bodies\n", camera, len(rows))
}

// WriteEvents writes the newest events, at most limit, oldest first.
func WriteEvents(w io.Writer, events []state.Entry, limit int) {
	fmt.Fprintln(w, "Recent events")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "%8d  %-14s %s\n", e.Tick, e.Kind, e.Body)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
