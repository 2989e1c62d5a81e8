package mesh

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleGrid() *Grid {
	return &Grid{
		Xs: []float64{0, 1},
		Ys: []float64{0, 0.5, 1},
		Probs: [][]float64{
			{0.1, 0.9},
			{0.5, 0.5},
			{0.8, 0.2},
		},
	}
}

func TestGridRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleGrid().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleGrid()) {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestGridSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.json")
	if err := sampleGrid().Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleGrid()) {
		t.Error("Load() returned a different grid")
	}
}

func TestRead_RejectsTamperedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleGrid().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	tampered := strings.Replace(buf.String(), "0.9", "0.7", 1)
	if _, err := Read(strings.NewReader(tampered)); err == nil {
		t.Error("Read() accepted a grid whose payload no longer matches its checksum")
	}
}

func TestRead_RejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleGrid().Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	bumped := strings.Replace(buf.String(), `"version": 1`, `"version": 99`, 1)
	if _, err := Read(strings.NewReader(bumped)); err == nil {
		t.Error("Read() accepted an unsupported version")
	}
}

func TestRead_RejectsGarbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not json")); err == nil {
		t.Error("Read() accepted garbage input")
	}
}
