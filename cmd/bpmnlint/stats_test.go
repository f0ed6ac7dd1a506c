package main

import (
	"path/filepath"
	"testing"
)

func resetStatsFlags() {
	statsFlags.file = ""
	statsFlags.dir = ""
	statsFlags.format = "text"
}

func TestStatsValidFile(t *testing.T) {
	resetStatsFlags()
	statsFlags.file = writeSampleDiagram(t, t.TempDir(), "approval.json")

	if err := showStats(nil, nil); err != nil {
		t.Errorf("showStats() returned error: %v", err)
	}
}

func TestStatsJSONFormat(t *testing.T) {
	resetStatsFlags()
	statsFlags.file = writeSampleDiagram(t, t.TempDir(), "approval.json")
	statsFlags.format = "json"

	if err := showStats(nil, nil); err != nil {
		t.Errorf("showStats() with json format returned error: %v", err)
	}
}

func TestStatsNoFileOrDir(t *testing.T) {
	resetStatsFlags()

	if err := showStats(nil, nil); err == nil {
		t.Error("showStats() without --file or --dir should return error")
	}
}

func TestStatsNonexistentFile(t *testing.T) {
	resetStatsFlags()
	statsFlags.file = filepath.Join(t.TempDir(), "missing.json")

	if err := showStats(nil, nil); err == nil {
		t.Error("showStats() with nonexistent file should return error")
	}
}

func TestStatsUndecodableFile(t *testing.T) {
	resetStatsFlags()
	dir := t.TempDir()
	statsFlags.file = writeInvalidDiagram(t, dir, "broken.json")

	// Structurally invalid but decodable: stats still work.
	if err := showStats(nil, nil); err != nil {
		t.Errorf("showStats() on decodable diagram returned error: %v", err)
	}
}
