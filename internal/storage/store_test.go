package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/planetarium/internal/dynamo"
	"github.com/san-kum/planetarium/internal/physics"
)

func testSamples() []Sample {
	return []Sample{
		{Tick: 0, Time: 0, Body: "sun"},
		{Tick: 0, Time: 0, Body: "earth", X: -1.496e11, VY: 29783, Separation: 0},
		{Tick: 1, Time: 3600, Body: "sun"},
		{Tick: 1, Time: 3600, Body: "earth", X: -149599923128.8193, Y: 107218800, VX: 21.353105750521888, VY: 29783, Separation: 1.496e11},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		System:   "sun-earth",
		TimeStep: 3600,
		Ticks:    1,
		Every:    1,
		Bodies:   []string{"sun", "earth"},
		Metrics:  map[string]float64{"energy_drift": 1.5e-9},
	}
	runID, err := st.Save(meta, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "sun-earth_") {
		t.Errorf("unexpected run id %s", runID)
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != runID || loaded.System != "sun-earth" || loaded.TimeStep != 3600 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Metrics["energy_drift"] != 1.5e-9 {
		t.Errorf("expected energy drift 1.5e-9, got %v", loaded.Metrics["energy_drift"])
	}
	if loaded.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	want := testSamples()
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d: expected %+v, got %+v", i, want[i], samples[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	first, err := st.Save(RunMetadata{System: "solar", Timestamp: time.Unix(100, 0)}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{System: "solar", Timestamp: time.Unix(50, 0)}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Fatal("runs saved in the same second must get distinct ids")
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != second {
		t.Errorf("expected two runs oldest first, got %+v", runs)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{System: "solar"}, testSamples())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	data, err := os.ReadFile(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		t.Fatalf("trajectory.csv not created: %v", err)
	}
	if first := strings.SplitN(string(data), "\n", 2)[0]; first != "tick,time,body,x,y,vx,vy,separation" {
		t.Errorf("unexpected header %q", first)
	}
}

func TestLoadSamplesMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runID, err := st.Save(RunMetadata{System: "solar"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	bad := "tick,time,body,x,y,vx,vy,separation\none,0,sun,0,0,0,0,0\n"
	if err := os.WriteFile(filepath.Join(tmpDir, runID, "trajectory.csv"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadSamples(runID); err == nil {
		t.Error("expected parse error")
	}
}

func TestRecorder(t *testing.T) {
	sun := physics.NewAnchor("sun", dynamo.Vec2{}, physics.SunMass, physics.Appearance{})
	earth := physics.NewPlanet("earth", dynamo.Vec2{X: 1}, dynamo.Vec2{Y: 2}, 1, physics.Appearance{})
	bodies := []*physics.Body{sun, earth}

	rec := NewRecorder(3)
	rec.Capture(0, 0, bodies)
	for tick := 1; tick <= 7; tick++ {
		rec.OnTick(tick, float64(tick), bodies)
	}

	samples := rec.Samples()
	if len(samples) != 6 {
		t.Fatalf("expected ticks 0, 3 and 6 for two bodies, got %d samples", len(samples))
	}
	if samples[2].Tick != 3 || samples[5].Tick != 6 {
		t.Errorf("unexpected cadence: %+v", samples)
	}
	if samples[1].Body != "earth" || samples[1].X != 1 || samples[1].VY != 2 {
		t.Errorf("unexpected earth sample %+v", samples[1])
	}

	if names := BodyNames(samples); len(names) != 2 || names[0] != "sun" {
		t.Errorf("unexpected body names %v", names)
	}
	if got := ForBody(samples, "earth"); len(got) != 3 {
		t.Errorf("expected 3 earth samples, got %d", len(got))
	}
	if got := Separations(samples, "earth"); len(got) != 3 {
		t.Errorf("expected 3 separations, got %d", len(got))
	}
}

func TestRecorderMinimumCadence(t *testing.T) {
	if NewRecorder(0).Every() != 1 {
		t.Error("cadence below one should clamp to every tick")
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSON(&buf, RunMetadata{ID: "solar_1", System: "solar"}, testSamples()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != "solar_1" || len(data.Samples) != 4 {
		t.Errorf("unexpected export %+v", data)
	}
	if data.Samples[3].VX != 21.353105750521888 {
		t.Errorf("lost precision: %v", data.Samples[3].VX)
	}
}
