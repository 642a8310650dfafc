package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

// DashboardHandler serves the shop dashboard and the mobile app bookings.
type DashboardHandler struct {
	dashboard ports.DashboardService
	bookings  ports.BookingService
}

func NewDashboardHandler(dashboard ports.DashboardService, bookings ports.BookingService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, bookings: bookings}
}

// Get handles GET /API/shop/:public_id.
//
// @Summary      Shop dashboard
// @Description  Shop details with sales, expense, notification and equipment aggregates.
// @Tags         dashboard
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  domain.Dashboard
// @Failure      401        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/shop/{public_id} [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	start := time.Now()
	dash, err := h.dashboard.Get(c.Request().Context(), p, c.Param("public_id"))
	metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dash)
}

// Bookings handles GET /API/shop/:public_id/bookings. The mobile app's
// payload is passed through untouched.
//
// @Summary      Bookings made through the barbers mobile app
// @Tags         dashboard
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  map[string]any
// @Failure      403        {object}  messageResponse
// @Failure      502        {object}  messageResponse
// @Router       /API/shop/{public_id}/bookings [get]
func (h *DashboardHandler) Bookings(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	raw, err := h.bookings.Bookings(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, raw)
}
