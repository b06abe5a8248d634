package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/DJRGVC/Noter/application/ports/inbound"
	"github.com/DJRGVC/Noter/application/ports/outbound"
)

type noteLibrary struct {
	logger outbound.LoggerPort
	store  outbound.NoteStorePort
}

func NewNoteLibrary(logger outbound.LoggerPort, store outbound.NoteStorePort) inbound.NoteLibraryPort {
	return &noteLibrary{
		logger: logger,
		store:  store,
	}
}

func (l *noteLibrary) ListNotes(ctx context.Context) (*inbound.NoteCatalog, error) {
	classes, err := l.store.ListClasses(ctx)
	if err != nil {
		l.logger.Error(err, "failed to list notes")
		return nil, err
	}

	return &inbound.NoteCatalog{
		Classes:      classes,
		TotalClasses: len(classes),
	}, nil
}

func (l *noteLibrary) CreateClass(ctx context.Context, name string) (*inbound.CreateClassResult, error) {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if slug == "" {
		return nil, fmt.Errorf("class name is required")
	}

	path, err := l.store.CreateClass(ctx, slug)
	if err != nil {
		l.logger.ErrorWithFields(err, "failed to create class", map[string]interface{}{
			"class": slug,
		})
		return nil, err
	}

	return &inbound.CreateClassResult{
		ClassName: slug,
		Path:      path,
	}, nil
}
