package inbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type NoteCatalog struct {
	Classes      map[string][]domain.NoteInfo `json:"classes"`
	TotalClasses int                          `json:"total_classes"`
}

type CreateClassResult struct {
	ClassName string `json:"class_name"`
	Path      string `json:"path"`
}

type NoteLibraryPort interface {
	ListNotes(ctx context.Context) (*NoteCatalog, error)
	CreateClass(ctx context.Context, name string) (*CreateClassResult, error)
}
