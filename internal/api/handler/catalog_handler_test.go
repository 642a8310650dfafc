package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

func TestCatalogHandler_CreateServices_ReportsExisting(t *testing.T) {
	stub := &stubCatalogService{
		createServicesFn: func(ctx context.Context, p domain.Principal, shopPublicID string, in []ports.ServiceInput) ([]string, error) {
			if len(in) != 2 || in[0].Name != "Fade" || in[0].Charges != 500 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []string{"shave"}, nil
		},
	}

	rec, err := serve(t, NewCatalogHandler(stub).CreateServices, request{
		method: http.MethodPost,
		target: "/API/services/shop-a/create-services",
		body:   `{"services":[{"serviceName":"Fade","serviceDescription":"","chargeAmount":500},{"serviceName":"shave","chargeAmount":300}]}`,
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	expectStatus(t, rec, err, http.StatusCreated)

	var resp createServicesResponse
	decode(t, rec, &resp)
	if len(resp.ExistingServices) != 1 || resp.ExistingServices[0] != "shave" {
		t.Fatalf("unexpected existing services: %+v", resp.ExistingServices)
	}
}

func TestCatalogHandler_CreateServices_RejectsEmptyBatch(t *testing.T) {
	_, err := serve(t, NewCatalogHandler(&stubCatalogService{}).CreateServices, request{
		method: http.MethodPost,
		target: "/API/services/shop-a/create-services",
		body:   `{"services":[]}`,
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCatalogHandler_FetchSales_Period(t *testing.T) {
	tests := []struct {
		month, year string
		want        domain.Period
	}{
		{"all", "all", domain.Period{}},
		{"3", "2024", domain.Period{Month: 3, Year: 2024}},
		{"ALL", "2023", domain.Period{Year: 2023}},
	}

	for _, tt := range tests {
		t.Run(tt.month+"/"+tt.year, func(t *testing.T) {
			stub := &stubCatalogService{
				fetchSalesFn: func(ctx context.Context, p domain.Principal, shopPublicID string, period domain.Period) ([]domain.SaleView, error) {
					if period != tt.want {
						t.Fatalf("expected %+v, got %+v", tt.want, period)
					}
					return nil, nil
				},
			}

			rec, err := serve(t, NewCatalogHandler(stub).FetchSales, request{
				method: http.MethodGet,
				target: "/API/sales/fetch/shop-a/" + tt.month + "/" + tt.year,
				params: map[string]string{"public_id": "shop-a", "month": tt.month, "year": tt.year},
				owner:  true,
			})
			expectStatus(t, rec, err, http.StatusOK)
		})
	}
}

func TestCatalogHandler_FetchSales_BadMonth(t *testing.T) {
	_, err := serve(t, NewCatalogHandler(&stubCatalogService{}).FetchSales, request{
		method: http.MethodGet,
		target: "/API/sales/fetch/shop-a/13/2024",
		params: map[string]string{"public_id": "shop-a", "month": "13", "year": "2024"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCatalogHandler_DeleteService(t *testing.T) {
	stub := &stubCatalogService{
		deleteServiceFn: func(ctx context.Context, p domain.Principal, id uint) error {
			if id != 42 {
				t.Fatalf("expected id 42, got %d", id)
			}
			return domain.ErrHasDependents
		},
	}

	_, err := serve(t, NewCatalogHandler(stub).DeleteService, request{
		method: http.MethodDelete,
		target: "/API/service/delete/42",
		params: map[string]string{"service_id": "42"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}

	_, err = serve(t, NewCatalogHandler(stub).DeleteService, request{
		method: http.MethodDelete,
		target: "/API/service/delete/abc",
		params: map[string]string{"service_id": "abc"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for non-numeric id, got %v", err)
	}
}
