package outbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type NoteStorePort interface {
	ListClasses(ctx context.Context) (map[string][]domain.NoteInfo, error)
	CreateClass(ctx context.Context, name string) (string, error)
}
