package profiles

import (
	"context"

	"github.com/dmitrijs2005/authdash/internal/client/models"
)

// Upserter is the part of the identity provider client that writes profiles.
type Upserter interface {
	UpsertProfile(ctx context.Context, p models.Profile) error
}

// ProviderRepository stores profiles through the identity provider.
type ProviderRepository struct {
	p Upserter
}

func NewProviderRepository(p Upserter) *ProviderRepository {
	return &ProviderRepository{p: p}
}

func (r *ProviderRepository) Upsert(ctx context.Context, p models.Profile) error {
	return r.p.UpsertProfile(ctx, p)
}
