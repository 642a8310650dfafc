package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubShopRepo struct {
	byPublicID map[string]*domain.Shop
	nextID     uint
	deleted    []string
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{byPublicID: make(map[string]*domain.Shop)}
}

func (r *stubShopRepo) add(publicID, email string) *domain.Shop {
	r.nextID++
	s := &domain.Shop{ID: r.nextID, PublicID: publicID, Email: email, Name: "Shop " + publicID}
	r.byPublicID[publicID] = s
	return s
}

func (r *stubShopRepo) Create(_ context.Context, shop *domain.Shop) error {
	for _, s := range r.byPublicID {
		if s.Email == shop.Email {
			return domain.ErrConflict
		}
	}
	r.nextID++
	shop.ID = r.nextID
	clone := *shop
	r.byPublicID[shop.PublicID] = &clone
	return nil
}

func (r *stubShopRepo) FindByPublicID(_ context.Context, publicID string) (*domain.Shop, error) {
	s, ok := r.byPublicID[publicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShopRepo) FindByEmail(_ context.Context, email string) (*domain.Shop, error) {
	for _, s := range r.byPublicID {
		if s.Email == email {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubShopRepo) Search(_ context.Context, name string, limit int) ([]domain.Shop, error) {
	var out []domain.Shop
	for _, s := range r.byPublicID {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) && len(out) < limit {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubShopRepo) Update(_ context.Context, shop *domain.Shop) error {
	clone := *shop
	r.byPublicID[shop.PublicID] = &clone
	return nil
}

func (r *stubShopRepo) UpdatePassword(_ context.Context, publicID, hash string) error {
	s, ok := r.byPublicID[publicID]
	if !ok {
		return domain.ErrNotFound
	}
	s.PasswordHash = hash
	return nil
}

func (r *stubShopRepo) Delete(_ context.Context, publicID string) error {
	delete(r.byPublicID, publicID)
	r.deleted = append(r.deleted, publicID)
	return nil
}

type stubEmployeeRepo struct {
	byPublicID map[string]*domain.Employee
	nextID     uint
	createErr  error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byPublicID: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	e.ID = r.nextID
	clone := *e
	r.byPublicID[e.PublicID] = &clone
	return nil
}

func (r *stubEmployeeRepo) FindByPublicID(_ context.Context, publicID string) (*domain.Employee, error) {
	e, ok := r.byPublicID[publicID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, e := range r.byPublicID {
		if e.Email == email {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubEmployeeRepo) ListByShop(_ context.Context, shopID uint) ([]domain.Employee, error) {
	var out []domain.Employee
	for _, e := range r.byPublicID {
		if e.ShopID == shopID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id uint) error {
	for k, e := range r.byPublicID {
		if e.ID == id {
			delete(r.byPublicID, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubEmployeeRepo) InitializePassword(_ context.Context, publicID, hash string) error {
	e, ok := r.byPublicID[publicID]
	if !ok {
		return domain.ErrNotFound
	}
	if e.PasswordHash != nil {
		return domain.ErrAlreadyActive
	}
	e.PasswordHash = &hash
	e.Active = true
	return nil
}

func (r *stubEmployeeRepo) UpdatePassword(_ context.Context, publicID, hash string) error {
	e, ok := r.byPublicID[publicID]
	if !ok {
		return domain.ErrNotFound
	}
	e.PasswordHash = &hash
	return nil
}

// stubOwnership maps "kind:id" to a shop public id.
type stubOwnership struct {
	owners map[string]string
}

func newStubOwnership() *stubOwnership {
	return &stubOwnership{owners: make(map[string]string)}
}

func (o *stubOwnership) set(kind domain.EntityKind, id uint, shopPublicID string) {
	o.owners[fmt.Sprintf("%s:%d", kind, id)] = shopPublicID
}

func (o *stubOwnership) OwnerShop(_ context.Context, ref domain.EntityRef) (string, error) {
	owner, ok := o.owners[fmt.Sprintf("%s:%d", ref.Kind, ref.ID)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

type sentMail struct {
	template  string
	recipient string
	vars      map[string]any
}

type stubMailer struct {
	err  error
	sent []sentMail
}

func (m *stubMailer) Send(_ context.Context, template, recipient string, vars map[string]any) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{template: template, recipient: recipient, vars: vars})
	return nil
}

type stubSMS struct {
	err  error
	sent []string
}

func (s *stubSMS) Send(_ context.Context, to, body string) error {
	s.sent = append(s.sent, to+": "+body)
	return s.err
}

type stubServiceRepo struct {
	byID    map[uint]*domain.Service
	nextID  uint
	inUse   map[uint]bool
	batches int
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{byID: make(map[uint]*domain.Service), inUse: make(map[uint]bool)}
}

func (r *stubServiceRepo) CreateBatch(_ context.Context, services []domain.Service) error {
	r.batches++
	for i := range services {
		r.nextID++
		svc := services[i]
		svc.ID = r.nextID
		r.byID[svc.ID] = &svc
	}
	return nil
}

func (r *stubServiceRepo) ListByShop(_ context.Context, shopID uint) ([]domain.Service, error) {
	var out []domain.Service
	for _, s := range r.byID {
		if s.ShopID == shopID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uint) (*domain.Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.Service) error {
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubServiceRepo) DeleteIfUnused(_ context.Context, id uint) error {
	if r.inUse[id] {
		return domain.ErrHasDependents
	}
	delete(r.byID, id)
	return nil
}

type stubSaleRepo struct {
	created []domain.Sale
}

func (r *stubSaleRepo) Create(_ context.Context, s *domain.Sale) error {
	s.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *s)
	return nil
}

func (r *stubSaleRepo) ListByShop(_ context.Context, shopID uint, _ domain.Period) ([]domain.SaleView, error) {
	var out []domain.SaleView
	for _, s := range r.created {
		if s.ShopID == shopID {
			out = append(out, domain.SaleView{Sale: s})
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Delete(context.Context, uint) error { return nil }

type stubInventoryRepo struct {
	byID   map[uint]*domain.Inventory
	nextID uint
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{byID: make(map[uint]*domain.Inventory)}
}

func (r *stubInventoryRepo) Create(_ context.Context, item *domain.Inventory) error {
	r.nextID++
	item.ID = r.nextID
	clone := *item
	r.byID[item.ID] = &clone
	return nil
}

func (r *stubInventoryRepo) ListByShop(_ context.Context, shopID uint) ([]domain.Inventory, error) {
	var out []domain.Inventory
	for _, i := range r.byID {
		if i.ShopID == shopID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uint) (*domain.Inventory, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *i
	return &clone, nil
}

func (r *stubInventoryRepo) UpdateLevel(_ context.Context, id uint, level int, at time.Time) error {
	i, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.ProductLevel = level
	i.ModifiedAt = &at
	return nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.byID, id)
	return nil
}

type stubNotificationRepo struct {
	created []domain.Notification
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	n.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *n)
	return nil
}

func (r *stubNotificationRepo) ListByShop(_ context.Context, shopID uint) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.created {
		if n.ShopID == shopID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uint) (*domain.Notification, error) {
	for _, n := range r.created {
		if n.ID == id {
			clone := n
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubNotificationRepo) MarkRead(context.Context, uint) error { return nil }
func (r *stubNotificationRepo) Delete(context.Context, uint) error { return nil }

type stubAccountRepo struct {
	inUse   map[uint]bool
	deleted []uint
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.ExpenseAccount) error { return nil }
func (r *stubAccountRepo) ListByShop(context.Context, uint) ([]domain.ExpenseAccount, error) {
	return nil, nil
}
func (r *stubAccountRepo) FindByID(_ context.Context, id uint) (*domain.ExpenseAccount, error) {
	return &domain.ExpenseAccount{ID: id}, nil
}
func (r *stubAccountRepo) Update(context.Context, *domain.ExpenseAccount) error { return nil }
func (r *stubAccountRepo) DeleteIfUnused(_ context.Context, id uint) error {
	if r.inUse[id] {
		return domain.ErrHasDependents
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type stubExpenseRepo struct {
	created []domain.Expense
}

func (r *stubExpenseRepo) Create(_ context.Context, e *domain.Expense) error {
	r.created = append(r.created, *e)
	return nil
}
func (r *stubExpenseRepo) ListByShop(context.Context, uint, domain.Period) ([]domain.Expense, error) {
	return nil, nil
}
func (r *stubExpenseRepo) FindByID(_ context.Context, id uint) (*domain.Expense, error) {
	return &domain.Expense{ID: id}, nil
}
func (r *stubExpenseRepo) Update(context.Context, *domain.Expense) error { return nil }
func (r *stubExpenseRepo) Delete(context.Context, uint) error { return nil }

type stubReportRepo struct {
	agg         *domain.DashboardAggregates
	err         error
	month, year int
	shopID      uint
}

func (r *stubReportRepo) Aggregates(_ context.Context, shopID uint, month, year int) (*domain.DashboardAggregates, error) {
	r.shopID, r.month, r.year = shopID, month, year
	if r.err != nil {
		return nil, r.err
	}
	return r.agg, nil
}

type stubBookingSource struct {
	raw json.RawMessage
	err error
}

func (s *stubBookingSource) Bookings(context.Context, string) (json.RawMessage, error) {
	return s.raw, s.err
}

var errBoom = errors.New("boom")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
