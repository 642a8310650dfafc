package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

var ownerShop = &domain.Shop{ID: 1, PublicID: "shop-a", Name: "Fade Masters", Email: "owner@fade.co.ke"}

// shopResolver accepts any token as the owner of ownerShop.
type shopResolver struct{}

func (shopResolver) ResolveShop(context.Context, string) (*domain.Shop, error) {
	return ownerShop, nil
}

func (shopResolver) ResolveEmployee(context.Context, string) (*domain.Employee, error) {
	return nil, domain.ErrTokenInvalid
}

type request struct {
	method string
	target string
	body   string
	params map[string]string
	owner  bool
}

// serve runs h for req. With owner set the request first passes the shop
// session gate so handlers see an authenticated principal.
func serve(t *testing.T, h echo.HandlerFunc, req request) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	r := httptest.NewRequest(req.method, req.target, body)
	if req.body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.owner {
		r.Header.Set(middleware.HeaderAccessToken, "session")
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	var names, values []string
	for name, value := range req.params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if req.owner {
		h = middleware.ShopSession(shopResolver{})(h)
	}
	return rec, h(c)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, err error, code int) {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != code {
		t.Fatalf("expected %d, got %d: %s", code, rec.Code, rec.Body.String())
	}
}

// --- service stubs; unset funcs panic through the embedded nil interface ---

type stubShopService struct {
	ports.ShopService
	registerFn func(ctx context.Context, in ports.RegisterShopInput) (*domain.Shop, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	searchFn   func(ctx context.Context, name string) ([]domain.ShopInfo, error)
	updateFn   func(ctx context.Context, p domain.Principal, publicID string, in ports.UpdateShopInput) error
}

func (s *stubShopService) Register(ctx context.Context, in ports.RegisterShopInput) (*domain.Shop, error) {
	return s.registerFn(ctx, in)
}

func (s *stubShopService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubShopService) Search(ctx context.Context, name string) ([]domain.ShopInfo, error) {
	return s.searchFn(ctx, name)
}

func (s *stubShopService) Update(ctx context.Context, p domain.Principal, publicID string, in ports.UpdateShopInput) error {
	return s.updateFn(ctx, p, publicID, in)
}

type stubEmployeeService struct {
	ports.EmployeeService
	createFn func(ctx context.Context, p domain.Principal, shopPublicID string, in ports.CreateEmployeeInput) (*domain.Employee, error)
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubEmployeeService) Create(ctx context.Context, p domain.Principal, shopPublicID string, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	return s.createFn(ctx, p, shopPublicID, in)
}

func (s *stubEmployeeService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubCatalogService struct {
	ports.CatalogService
	createServicesFn func(ctx context.Context, p domain.Principal, shopPublicID string, in []ports.ServiceInput) ([]string, error)
	fetchSalesFn     func(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.SaleView, error)
	deleteServiceFn  func(ctx context.Context, p domain.Principal, id uint) error
}

func (s *stubCatalogService) CreateServices(ctx context.Context, p domain.Principal, shopPublicID string, in []ports.ServiceInput) ([]string, error) {
	return s.createServicesFn(ctx, p, shopPublicID, in)
}

func (s *stubCatalogService) FetchSales(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.SaleView, error) {
	return s.fetchSalesFn(ctx, p, shopPublicID, period)
}

func (s *stubCatalogService) DeleteService(ctx context.Context, p domain.Principal, id uint) error {
	return s.deleteServiceFn(ctx, p, id)
}

type stubInventoryService struct {
	ports.InventoryService
	createFn      func(ctx context.Context, p domain.Principal, shopPublicID, productName string, level int) (*domain.Inventory, error)
	updateLevelFn func(ctx context.Context, p domain.Principal, id uint, level int) error
}

func (s *stubInventoryService) Create(ctx context.Context, p domain.Principal, shopPublicID, productName string, level int) (*domain.Inventory, error) {
	return s.createFn(ctx, p, shopPublicID, productName, level)
}

func (s *stubInventoryService) UpdateLevel(ctx context.Context, p domain.Principal, id uint, level int) error {
	return s.updateLevelFn(ctx, p, id, level)
}

type stubDashboardService struct {
	getFn func(ctx context.Context, p domain.Principal, shopPublicID string) (*domain.Dashboard, error)
}

func (s *stubDashboardService) Get(ctx context.Context, p domain.Principal, shopPublicID string) (*domain.Dashboard, error) {
	return s.getFn(ctx, p, shopPublicID)
}

type stubBookingService struct {
	bookingsFn func(ctx context.Context, p domain.Principal, shopPublicID string) (json.RawMessage, error)
}

func (s *stubBookingService) Bookings(ctx context.Context, p domain.Principal, shopPublicID string) (json.RawMessage, error) {
	return s.bookingsFn(ctx, p, shopPublicID)
}

type stubExpenseService struct {
	ports.ExpenseService
	createExpenseFn func(ctx context.Context, p domain.Principal, shopPublicID string, in ports.ExpenseInput) (*domain.Expense, error)
	fetchExpensesFn func(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.Expense, error)
	deleteAccountFn func(ctx context.Context, p domain.Principal, id uint) error
}

func (s *stubExpenseService) CreateExpense(ctx context.Context, p domain.Principal, shopPublicID string, in ports.ExpenseInput) (*domain.Expense, error) {
	return s.createExpenseFn(ctx, p, shopPublicID, in)
}

func (s *stubExpenseService) FetchExpenses(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.Expense, error) {
	return s.fetchExpensesFn(ctx, p, shopPublicID, period)
}

func (s *stubExpenseService) DeleteAccount(ctx context.Context, p domain.Principal, id uint) error {
	return s.deleteAccountFn(ctx, p, id)
}

type stubNotificationService struct {
	ports.NotificationService
	createFn func(ctx context.Context, shopPublicID, title, message string) (*domain.Notification, error)
	getFn    func(ctx context.Context, p domain.Principal, id uint) (*domain.Notification, error)
}

func (s *stubNotificationService) Create(ctx context.Context, shopPublicID, title, message string) (*domain.Notification, error) {
	return s.createFn(ctx, shopPublicID, title, message)
}

func (s *stubNotificationService) Get(ctx context.Context, p domain.Principal, id uint) (*domain.Notification, error) {
	return s.getFn(ctx, p, id)
}
