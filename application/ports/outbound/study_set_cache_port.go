package outbound

import (
	"context"

	"github.com/DJRGVC/Noter/domain"
)

type StudySetCachePort interface {
	Save(ctx context.Context, set domain.StudySet) error
}
