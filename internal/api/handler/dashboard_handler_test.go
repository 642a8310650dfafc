package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

func TestDashboardHandler_Get(t *testing.T) {
	popular := "Fade"
	stub := &stubDashboardService{
		getFn: func(ctx context.Context, p domain.Principal, shopPublicID string) (*domain.Dashboard, error) {
			if p.ShopPublicID != "shop-a" || shopPublicID != "shop-a" {
				t.Fatalf("unexpected principal/path: %+v %s", p, shopPublicID)
			}
			return &domain.Dashboard{
				ShopInfo:          ownerShop.Info(),
				Sales:             []domain.DailySales{{Day: "2024-03-01", Sales: 2100}},
				PaymentMethods:    []domain.PaymentMethodCount{},
				Expenses:          []domain.AccountExpense{},
				CurrentMonthSales: 2100,
				PopularService:    &popular,
			}, nil
		},
	}

	rec, err := serve(t, NewDashboardHandler(stub, nil).Get, request{
		method: http.MethodGet,
		target: "/API/shop/shop-a",
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	expectStatus(t, rec, err, http.StatusOK)

	var resp map[string]any
	decode(t, rec, &resp)
	for _, key := range []string{"shopInfo", "sales", "notifications", "payment_methods", "expenses",
		"current_month_expenses", "current_month_sales", "popular_service", "equipment_value"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing key %q in %v", key, resp)
		}
	}
	if resp["current_month_sales"].(float64) != 2100 || resp["popular_service"] != "Fade" {
		t.Fatalf("unexpected aggregates: %v", resp)
	}
}

func TestDashboardHandler_Get_Forbidden(t *testing.T) {
	stub := &stubDashboardService{
		getFn: func(context.Context, domain.Principal, string) (*domain.Dashboard, error) {
			return nil, domain.ErrForbidden
		},
	}

	_, err := serve(t, NewDashboardHandler(stub, nil).Get, request{
		method: http.MethodGet,
		target: "/API/shop/shop-b",
		params: map[string]string{"public_id": "shop-b"},
		owner:  true,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDashboardHandler_Bookings_PassThrough(t *testing.T) {
	payload := `{"bookings":[{"id":1,"customer":"Baraka"}]}`
	stub := &stubBookingService{
		bookingsFn: func(context.Context, domain.Principal, string) (json.RawMessage, error) {
			return json.RawMessage(payload), nil
		},
	}

	rec, err := serve(t, NewDashboardHandler(nil, stub).Bookings, request{
		method: http.MethodGet,
		target: "/API/shop/shop-a/bookings",
		params: map[string]string{"public_id": "shop-a"},
		owner:  true,
	})
	expectStatus(t, rec, err, http.StatusOK)

	if rec.Body.String() != payload {
		t.Fatalf("expected payload untouched, got %s", rec.Body.String())
	}
}
