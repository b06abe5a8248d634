package services

import (
	"context"
	"testing"

	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/infrastructure/adapters"
)

type stubNoteStore struct {
	classes      map[string][]domain.NoteInfo
	createdClass string
}

func (s *stubNoteStore) ListClasses(_ context.Context) (map[string][]domain.NoteInfo, error) {
	return s.classes, nil
}

func (s *stubNoteStore) CreateClass(_ context.Context, name string) (string, error) {
	s.createdClass = name
	return "notes/" + name, nil
}

func TestNoteLibrary_ListNotes(t *testing.T) {
	store := &stubNoteStore{classes: map[string][]domain.NoteInfo{
		"biology": {{Filename: "week1.html", Class: "biology"}},
		"history": {},
	}}

	library := NewNoteLibrary(adapters.NewZerologWrapper(), store)

	catalog, err := library.ListNotes(context.Background())
	if err != nil {
		t.Fatal("Failed to list notes:", err)
	}

	if catalog.TotalClasses != 2 {
		t.Fatalf("expected 2 classes, got %d", catalog.TotalClasses)
	}
	if len(catalog.Classes["biology"]) != 1 {
		t.Fatalf("unexpected biology notes: %v", catalog.Classes["biology"])
	}
}

func TestNoteLibrary_CreateClass_Slugifies(t *testing.T) {
	store := &stubNoteStore{}
	library := NewNoteLibrary(adapters.NewZerologWrapper(), store)

	result, err := library.CreateClass(context.Background(), "  Organic Chemistry ")
	if err != nil {
		t.Fatal("Failed to create class:", err)
	}

	if result.ClassName != "organic_chemistry" {
		t.Fatalf("unexpected slug: %q", result.ClassName)
	}
	if store.createdClass != "organic_chemistry" {
		t.Fatalf("store received %q", store.createdClass)
	}
	if result.Path != "notes/organic_chemistry" {
		t.Fatalf("unexpected path: %q", result.Path)
	}
}

func TestNoteLibrary_CreateClass_EmptyName(t *testing.T) {
	library := NewNoteLibrary(adapters.NewZerologWrapper(), &stubNoteStore{})

	if _, err := library.CreateClass(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for blank class name")
	}
}
