package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/serpent/config"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Seed:    42,
		Tick:    1000,
		FoldMin: 20,
		FoldMax: 340,
		Creatures: []CreatureState{
			{
				Name:    "snake",
				Mode:    "wander",
				TargetX: 640,
				TargetY: 512,
				Nodes: []NodeState{
					{X: 400, Y: 400, Size: 30, ConstraintRadius: 10},
					{X: 390, Y: 400, Size: 30, ConstraintRadius: 10},
				},
			},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkFoldStorm,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Seed != 42 || loaded.Tick != 1000 || loaded.FoldMax != 340 {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Creatures) != 1 || len(loaded.Creatures[0].Nodes) != 2 {
		t.Fatalf("creatures not loaded: %+v", loaded.Creatures)
	}
	if loaded.Creatures[0].Nodes[1] != snapshot.Creatures[0].Nodes[1] {
		t.Errorf("node mismatch: got %+v", loaded.Creatures[0].Nodes[1])
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkFoldStorm {
		t.Errorf("bookmark not loaded: %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	path, err := SaveSnapshot(&Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkSettled, Tick: 5000},
	}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_5000_settled.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(tmpDir, "snapshot_3000.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")

	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := int32(1); i <= 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndTick: i * 60, Corrections: int(i)}); err != nil {
			t.Fatalf("WriteStats: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkSettled, Tick: 180, Description: "quiet, still"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := ReadStats(f)
	if err != nil {
		t.Fatalf("ReadStats: %v", err)
	}
	if len(rows) != 3 || rows[2].WindowEndTick != 180 || rows[2].Corrections != 3 {
		t.Errorf("rows = %+v", rows)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "type,tick,description\n") {
		t.Errorf("bookmarks.csv header: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Methods on a nil manager are no-ops.
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}
