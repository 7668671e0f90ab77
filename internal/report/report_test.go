package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
)

func testFrame(t *testing.T) (sim.Frame, *catalog.Catalog) {
	t.Helper()
	cat := catalog.Default()
	e := sim.New(cat)
	if err := e.Apply(sim.FocusOn(catalog.Mars)); err != nil {
		t.Fatalf("FocusOn: %v", err)
	}
	var f sim.Frame
	for i := 0; i < 30; i++ {
		f = e.Tick(time.Second / 60)
	}
	return f, cat
}

func TestExportSnapshot(t *testing.T) {
	f, cat := testFrame(t)
	exportedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []state.Entry{
		{Event: sim.Event{Kind: sim.EventFocusStarted, Body: catalog.Mars, Tick: 0}, Timestamp: exportedAt},
	}

	export := ExportSnapshot(f, cat, events, exportedAt)

	if export.Tick != 30 {
		t.Errorf("Tick = %d, want 30", export.Tick)
	}
	if export.ExportedAt != exportedAt {
		t.Errorf("ExportedAt = %v, want %v", export.ExportedAt, exportedAt)
	}
	// sun, eight planets, the moon
	if len(export.Bodies) != 10 {
		t.Fatalf("Bodies count = %d, want 10", len(export.Bodies))
	}
	if export.Bodies[0].ID != "sun" || export.Bodies[0].Kind != "star" {
		t.Errorf("first body = %+v, want the sun", export.Bodies[0])
	}

	var moon *BodyExport
	for i := range export.Bodies {
		if export.Bodies[i].ID == string(catalog.Moon) {
			moon = &export.Bodies[i]
		}
	}
	if moon == nil {
		t.Fatal("moon missing from export")
	}
	if moon.Parent != "earth" || moon.Kind != "satellite" {
		t.Errorf("moon = %+v, want satellite of earth", *moon)
	}

	if export.Control.Focused != "mars" {
		t.Errorf("Focused = %q, want mars", export.Control.Focused)
	}
	if export.Camera.State != "transitioning" || export.Camera.Target != "mars" {
		t.Errorf("Camera = %+v, want transitioning to mars", export.Camera)
	}
	if len(export.Events) != 1 || export.Events[0].Kind != "focusStarted" {
		t.Errorf("Events = %+v", export.Events)
	}
}

func TestSnapshotWriteJSON(t *testing.T) {
	f, cat := testFrame(t)
	export := ExportSnapshot(f, cat, nil, time.Now())

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"tick", "camera", "control", "bodies"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("JSON missing %q", key)
		}
	}
	if _, ok := parsed["events"]; ok {
		t.Error("empty events should be omitted")
	}
}

func TestGenerateSummaryRows(t *testing.T) {
	f, cat := testFrame(t)
	rows := GenerateSummaryRows(f, cat)

	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	for _, r := range rows {
		if r.Orbit < 0 || r.Orbit >= 360 || r.Spin < 0 || r.Spin >= 360 {
			t.Errorf("%s angles not wrapped: orbit %v spin %v", r.Name, r.Orbit, r.Spin)
		}
	}
	if rows[0].Distance != 0 {
		t.Errorf("sun distance = %v, want 0", rows[0].Distance)
	}
}

func TestWrapDeg(t *testing.T) {
	tests := []struct {
		rad  float64
		want float64
	}{
		{0, 0},
		{math.Pi, 180},
		{-math.Pi / 2, 270},
		{5 * math.Pi, 180},
	}
	for _, tt := range tests {
		if got := wrapDeg(tt.rad); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("wrapDeg(%v) = %v, want %v", tt.rad, got, tt.want)
		}
	}
}

func TestWriteSummaryTable(t *testing.T) {
	f, cat := testFrame(t)

	var buf bytes.Buffer
	WriteSummaryTable(&buf, f, cat)
	output := buf.String()

	for _, want := range []string{"Orrery @ tick 30", "playing", "Jupiter", "Moon", "transitioning → mars", "Total: 10 bodies"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, sim.Frame{}, catalog.Default())

	output := buf.String()
	if !strings.Contains(output, "No bodies") {
		t.Error("Output should indicate no bodies")
	}
	if !strings.Contains(output, "paused") {
		t.Error("zero control is not playing")
	}
}

func TestWriteEvents(t *testing.T) {
	var events []state.Entry
	for i := 0; i < 5; i++ {
		events = append(events, state.Entry{Event: sim.Event{Kind: sim.EventPaused, Tick: uint64(i)}})
	}
	events = append(events, state.Entry{Event: sim.Event{Kind: sim.EventFocusComplete, Body: catalog.Mars, Tick: 99}})

	var buf bytes.Buffer
	WriteEvents(&buf, events, 2)
	output := buf.String()

	if !strings.Contains(output, "focusComplete") || !strings.Contains(output, "mars") {
		t.Errorf("newest event missing:\n%s", output)
	}
	if strings.Count(output, "paused") != 1 {
		t.Errorf("limit 2 should keep one paused event:\n%s", output)
	}

	buf.Reset()
	WriteEvents(&buf, nil, 10)
	if !strings.Contains(buf.String(), "No events") {
		t.Error("Output should indicate no events")
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"Mars", 10, "Mars"},
		{"Jupiter", 5, "Jup.."},
		{"Saturn", 3, "Sat"},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
