package service

import (
	"context"
	"fmt"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

// Authorizer matches a principal's tenant against a shop or the resolved
// owner of a row.
type Authorizer struct {
	owners ports.OwnershipRepository
}

func NewAuthorizer(owners ports.OwnershipRepository) *Authorizer {
	return &Authorizer{owners: owners}
}

func (a *Authorizer) AuthorizeShop(p domain.Principal, shopPublicID string) error {
	if p.ShopPublicID == "" || p.ShopPublicID != shopPublicID {
		return domain.ErrForbidden
	}
	return nil
}

func (a *Authorizer) AuthorizeEntity(ctx context.Context, p domain.Principal, ref domain.EntityRef) error {
	owner, err := a.owners.OwnerShop(ctx, ref)
	if err != nil {
		return fmt.Errorf("resolve owner of %s %d: %w", ref.Kind, ref.ID, err)
	}
	return a.AuthorizeShop(p, owner)
}
