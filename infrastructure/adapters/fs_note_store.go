package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DJRGVC/Noter/application/ports/outbound"
	"github.com/DJRGVC/Noter/config"
	"github.com/DJRGVC/Noter/domain"
	"github.com/DJRGVC/Noter/html_utils"
)

type fsNoteStore struct {
	logger      outbound.LoggerPort
	notesConfig *config.NotesConfig
}

func NewFsNoteStore(notesConfig *config.NotesConfig, logger outbound.LoggerPort) outbound.NoteStorePort {
	return &fsNoteStore{
		logger:      logger,
		notesConfig: notesConfig,
	}
}

// ListClasses scans one level of class directories for HTML notes. A missing
// notes directory yields an empty catalog, not an error.
func (s *fsNoteStore) ListClasses(ctx context.Context) (map[string][]domain.NoteInfo, error) {
	classes := make(map[string][]domain.NoteInfo)

	entries, err := os.ReadDir(s.notesConfig.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return classes, nil
		}
		s.logger.Error(err, "failed to read notes directory")
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		className := entry.Name()
		notes, err := s.listClassNotes(className)
		if err != nil {
			return nil, err
		}
		classes[className] = notes
	}

	return classes, nil
}

func (s *fsNoteStore) listClassNotes(className string) ([]domain.NoteInfo, error) {
	classDir := filepath.Join(s.notesConfig.Dir, className)
	entries, err := os.ReadDir(classDir)
	if err != nil {
		s.logger.ErrorWithFields(err, "failed to read class directory", map[string]interface{}{
			"class": className,
		})
		return nil, err
	}

	notes := make([]domain.NoteInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		notes = append(notes, domain.NoteInfo{
			Filename: entry.Name(),
			Path:     filepath.ToSlash(filepath.Join(filepath.Base(s.notesConfig.Dir), className, entry.Name())),
			Title:    s.noteTitle(filepath.Join(classDir, entry.Name())),
			Class:    className,
		})
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Filename < notes[j].Filename
	})

	return notes, nil
}

// noteTitle falls back to the filename stem when the document has no usable
// heading.
func (s *fsNoteStore) noteTitle(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), ".html")

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.ErrorWithFields(err, "failed to read note file", map[string]interface{}{
			"path": path,
		})
		return stem
	}

	if title := html_utils.Title(string(content)); title != "" {
		return title
	}
	return stem
}

func (s *fsNoteStore) CreateClass(ctx context.Context, name string) (string, error) {
	classDir := filepath.Join(s.notesConfig.Dir, name)
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		s.logger.ErrorWithFields(err, "failed to create class directory", map[string]interface{}{
			"class": name,
		})
		return "", err
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(s.notesConfig.Dir), name)), nil
}
