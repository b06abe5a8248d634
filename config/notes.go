package config

import (
	"fmt"
	"os"
)

type NotesConfig struct {
	Dir string
}

func GetNotesConfig() (*NotesConfig, error) {
	dir := os.Getenv("NOTES_DIR")
	if dir == "" {
		return nil, fmt.Errorf("NOTES_DIR must be set")
	}

	return &NotesConfig{
		Dir: dir,
	}, nil
}
