package sessions

import (
	"context"

	"github.com/dmitrijs2005/authdash/internal/client/models"
)

type Repository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
