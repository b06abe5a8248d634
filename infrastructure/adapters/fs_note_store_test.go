package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DJRGVC/Noter/config"
)

func TestFsNoteStore_ListClasses(t *testing.T) {
	notesDir := filepath.Join(t.TempDir(), "notes")

	biologyDir := filepath.Join(notesDir, "biology")
	if err := os.MkdirAll(biologyDir, 0o755); err != nil {
		t.Fatal("Failed to create class directory:", err)
	}

	titled := `<html><head><title>x</title></head><body><h1>Cell Division</h1></body></html>`
	if err := os.WriteFile(filepath.Join(biologyDir, "week2.html"), []byte(titled), 0o644); err != nil {
		t.Fatal("Failed to write note:", err)
	}
	if err := os.WriteFile(filepath.Join(biologyDir, "week1.html"), []byte(`<html><body><p>no heading</p></body></html>`), 0o644); err != nil {
		t.Fatal("Failed to write note:", err)
	}
	if err := os.WriteFile(filepath.Join(biologyDir, "scratch.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal("Failed to write file:", err)
	}

	store := NewFsNoteStore(&config.NotesConfig{Dir: notesDir}, NewZerologWrapper())

	classes, err := store.ListClasses(context.Background())
	if err != nil {
		t.Fatal("Failed to list classes:", err)
	}

	notes, ok := classes["biology"]
	if !ok {
		t.Fatal("expected biology class in catalog")
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].Filename != "week1.html" || notes[1].Filename != "week2.html" {
		t.Fatalf("notes not sorted by filename: %v", notes)
	}
	if notes[0].Title != "week1" {
		t.Fatalf("expected filename stem title, got %q", notes[0].Title)
	}
	if notes[1].Title != "Cell Division" {
		t.Fatalf("expected h1 title, got %q", notes[1].Title)
	}
	if notes[1].Path != "notes/biology/week2.html" {
		t.Fatalf("unexpected note path: %q", notes[1].Path)
	}
}

func TestFsNoteStore_ListClasses_MissingDir(t *testing.T) {
	store := NewFsNoteStore(&config.NotesConfig{Dir: filepath.Join(t.TempDir(), "absent")}, NewZerologWrapper())

	classes, err := store.ListClasses(context.Background())
	if err != nil {
		t.Fatal("missing notes directory should not be an error:", err)
	}
	if len(classes) != 0 {
		t.Fatalf("expected empty catalog, got %v", classes)
	}
}

func TestFsNoteStore_CreateClass(t *testing.T) {
	notesDir := filepath.Join(t.TempDir(), "notes")

	store := NewFsNoteStore(&config.NotesConfig{Dir: notesDir}, NewZerologWrapper())

	path, err := store.CreateClass(context.Background(), "organic_chemistry")
	if err != nil {
		t.Fatal("Failed to create class:", err)
	}
	if path != "notes/organic_chemistry" {
		t.Fatalf("unexpected class path: %q", path)
	}

	info, err := os.Stat(filepath.Join(notesDir, "organic_chemistry"))
	if err != nil || !info.IsDir() {
		t.Fatal("class directory was not created")
	}
}
