package profiles

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authdash/internal/client/models"
)

var ErrInvalidID = errors.New("invalid profile id")

type Repository interface {
	Upsert(ctx context.Context, p models.Profile) error
}
