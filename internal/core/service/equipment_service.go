package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

type EquipmentService struct {
	equipment ports.EquipmentRepository
	authz     ports.Authorizer
}

func NewEquipmentService(equipment ports.EquipmentRepository, authz ports.Authorizer) *EquipmentService {
	return &EquipmentService{equipment: equipment, authz: authz}
}

func (s *EquipmentService) Create(ctx context.Context, p domain.Principal, shopPublicID string, in ports.EquipmentInput) (*domain.Equipment, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}

	eq := &domain.Equipment{
		ShopID:      p.ShopID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		BoughtOn:    in.BoughtOn,
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	return eq, nil
}

func (s *EquipmentService) List(ctx context.Context, p domain.Principal, shopPublicID string) ([]domain.Equipment, error) {
	if err := s.authz.AuthorizeShop(p, shopPublicID); err != nil {
		return nil, err
	}
	return s.equipment.ListByShop(ctx, p.ShopID)
}

// MarkFaulty is one-way; there is no operation that clears the flag.
func (s *EquipmentService) MarkFaulty(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindEquipment, ID: id}); err != nil {
		return err
	}
	return s.equipment.MarkFaulty(ctx, id)
}

func (s *EquipmentService) Delete(ctx context.Context, p domain.Principal, id uint) error {
	if err := s.authz.AuthorizeEntity(ctx, p, domain.EntityRef{Kind: domain.KindEquipment, ID: id}); err != nil {
		return err
	}
	return s.equipment.Delete(ctx, id)
}
