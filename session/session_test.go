package session

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/stepmark"
)

// writeSession creates a session folder with one 64×48 screenshot step and
// one text-only step.
func writeSession(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(20, 10, color.RGBA{0, 128, 0, 255})
	f, err := os.Create(filepath.Join(dir, "step_001.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	manifest := `{"project_name": "Demo", "steps": [
		{"step": 1, "description": "clicked", "screenshot": "step_001.png", "window": "Editor",
		 "objects": [{"type": "redact", "color": "#111111", "width": 3, "x1": 0, "y1": 0, "x2": 9, "y2": 9}],
		 "crop": null},
		{"step": 2, "description": "note", "screenshot": null}
	]}`
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestOpen(t *testing.T) {
	s, err := Open(writeSession(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	doc := s.Document()
	if doc.Len() != 2 {
		t.Fatalf("Len = %d, want 2", doc.Len())
	}
	if s.ProjectName() != "Demo" {
		t.Errorf("ProjectName = %q", s.ProjectName())
	}
	id, _ := doc.StepAt(0)
	st, _ := doc.State(id)
	if len(st.Objects) != 1 {
		t.Errorf("objects = %d, want 1", len(st.Objects))
	}
	if doc.UndoDepth(id) != 0 {
		t.Error("loading state must not record undo")
	}
}

func TestOpen_DropsInvalidObjects(t *testing.T) {
	dir := t.TempDir()
	manifest := `{"project_name": "Demo", "steps": [
		{"step": 1, "description": "drawn", "screenshot": null,
		 "objects": [
			{"type": "draw", "color": "#e74c3c", "width": 3, "points": []},
			{"type": "redact", "color": "#111111", "width": 3, "x1": 0, "y1": 0, "x2": 9, "y2": 9}
		 ],
		 "crop": {"x1": 0, "y1": 0, "x2": 40, "y2": 30}},
		{"step": 2, "description": "note", "screenshot": null,
		 "objects": [{"type": "highlight", "color": "#3d8ef0", "width": 3, "x1": 5, "y1": 5, "x2": 25, "y2": 25}]}
	]}`
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	doc := s.Document()
	if doc.Len() != 2 {
		t.Fatalf("Len = %d, want 2", doc.Len())
	}

	first, _ := doc.StepAt(0)
	st, _ := doc.State(first)
	if len(st.Objects) != 1 {
		t.Fatalf("step 1 objects = %d, want 1", len(st.Objects))
	}
	if m, ok := st.Objects[0].(stepmark.RectMarkup); !ok || m.Kind != stepmark.Redact {
		t.Errorf("step 1 object = %+v, want the redact box", st.Objects[0])
	}
	if st.Crop == nil || *st.Crop != stepmark.R(0, 0, 40, 30) {
		t.Errorf("step 1 crop = %v", st.Crop)
	}

	second, _ := doc.StepAt(1)
	if st, _ := doc.State(second); len(st.Objects) != 1 {
		t.Errorf("step 2 objects = %d, want 1", len(st.Objects))
	}
}

func TestSession_BaseImage(t *testing.T) {
	s, err := Open(writeSession(t))
	if err != nil {
		t.Fatal(err)
	}
	shot, _ := s.Document().StepAt(0)
	text, _ := s.Document().StepAt(1)

	size, err := s.ImageSize(shot)
	if err != nil {
		t.Fatalf("ImageSize: %v", err)
	}
	if size != image.Pt(64, 48) {
		t.Errorf("size = %v, want 64x48", size)
	}
	if _, err := s.BaseImage(shot); err != nil {
		t.Fatalf("cached BaseImage: %v", err)
	}
	if st := s.images.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", st.Hits, st.Misses)
	}

	if _, err := s.BaseImage(text); !errors.Is(err, stepmark.ErrTextOnly) {
		t.Errorf("text step err = %v, want ErrTextOnly", err)
	}
	if _, err := s.BaseImage("nope"); !errors.Is(err, stepmark.ErrUnknownStep) {
		t.Errorf("unknown step err = %v, want ErrUnknownStep", err)
	}
}

func TestSession_Release(t *testing.T) {
	s, err := Open(writeSession(t))
	if err != nil {
		t.Fatal(err)
	}
	shot, _ := s.Document().StepAt(0)
	for range 2 {
		if _, err := s.BaseImage(shot); err != nil {
			t.Fatal(err)
		}
	}

	s.Release()
	if n := s.images.Len(); n != 0 {
		t.Errorf("cached images after Release = %d, want 0", n)
	}
	if _, err := s.BaseImage(shot); err != nil {
		t.Fatalf("BaseImage after Release: %v", err)
	}
	if st := s.images.Stats(); st.Hits != 1 || st.Misses != 2 {
		t.Errorf("cache hits/misses = %d/%d, want 1/2", st.Hits, st.Misses)
	}
}

func TestSession_RejectsEscapingPath(t *testing.T) {
	s, err := Open(writeSession(t))
	if err != nil {
		t.Fatal(err)
	}
	id := s.Append("evil", "../outside.png")
	if _, err := s.BaseImage(id); !errors.Is(err, errUnsafePath) {
		t.Errorf("err = %v, want errUnsafePath", err)
	}
}

func TestSession_Flatten(t *testing.T) {
	s, err := Open(writeSession(t))
	if err != nil {
		t.Fatal(err)
	}
	doc := s.Document()
	shot, _ := doc.StepAt(0)
	text, _ := doc.StepAt(1)

	img, err := doc.Flatten(shot, s)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{16, 16, 16, 255}) {
		t.Errorf("redact interior = %v", got)
	}
	if got := img.RGBAAt(20, 10); got != (color.RGBA{0, 128, 0, 255}) {
		t.Errorf("untouched pixel = %v", got)
	}

	if img, err := doc.Flatten(text, s); !errors.Is(err, stepmark.ErrTextOnly) || img != nil {
		t.Errorf("text-only flatten = %v, %v", img, err)
	}
}

func TestSession_SyncFollowsReorder(t *testing.T) {
	dir := writeSession(t)
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	doc := s.Document()
	shot, _ := doc.StepAt(0)

	if err := doc.SetCrop(shot, &stepmark.Rect{X1: 0, Y1: 0, X2: 40, Y2: 30}); err != nil {
		t.Fatal(err)
	}
	if err := doc.MoveStep(0, 1); err != nil {
		t.Fatal(err)
	}
	added := s.Append("typed note", "")
	if err := s.SetDescription(added, "typed note, edited"); err != nil {
		t.Fatal(err)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(m.Steps))
	}
	want := []string{"note", "clicked", "typed note, edited"}
	for i, e := range m.Steps {
		if e.Description != want[i] {
			t.Errorf("step %d description = %q, want %q", i, e.Description, want[i])
		}
		if e.Step != i+1 {
			t.Errorf("step %d number = %d, want %d", i, e.Step, i+1)
		}
	}
	moved := m.Steps[1]
	if moved.State.Crop == nil || *moved.State.Crop != stepmark.R(0, 0, 40, 30) {
		t.Errorf("crop did not follow its step: %v", moved.State.Crop)
	}
	if len(moved.State.Objects) != 1 {
		t.Errorf("objects did not follow their step: %d", len(moved.State.Objects))
	}
	if string(moved.Extra["window"]) != `"Editor"` {
		t.Errorf("extra key lost: %v", moved.Extra)
	}
}

func TestSession_SyncDropsRemovedSteps(t *testing.T) {
	dir := writeSession(t)
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	text, _ := s.Document().StepAt(1)
	if err := s.Document().RemoveStep(text); err != nil {
		t.Fatal(err)
	}
	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Entry(text); ok {
		t.Error("removed step still has a record")
	}
	m, _ := LoadManifest(dir)
	if len(m.Steps) != 1 {
		t.Errorf("steps = %d, want 1", len(m.Steps))
	}
}
