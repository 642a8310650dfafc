package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

// CatalogHandler serves services and the sales recorded against them.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type serviceRequest struct {
	Name        string `json:"serviceName" validate:"required,notblank,max=50"`
	Description string `json:"serviceDescription" validate:"max=255"`
	Charges     int    `json:"chargeAmount" validate:"gte=0"`
}

type createServicesRequest struct {
	Services []serviceRequest `json:"services" validate:"required,min=1,dive"`
}

type createServicesResponse struct {
	Message          string   `json:"message"`
	ExistingServices []string `json:"existing_services"`
}

type saleRequest struct {
	ServiceID     uint   `json:"service" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,max=30"`
	Description   string `json:"paymentDescription" validate:"max=255"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

func (r serviceRequest) input() ports.ServiceInput {
	return ports.ServiceInput{Name: r.Name, Description: r.Description, Charges: r.Charges}
}

// CreateServices handles POST /API/services/:public_id/create-services.
// Names the shop already has are skipped and reported back.
//
// @Summary      Add services to a shop
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string                 true  "Shop public id"
// @Param        body       body      createServicesRequest  true  "Services"
// @Success      201        {object}  createServicesResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/services/{public_id}/create-services [post]
func (h *CatalogHandler) CreateServices(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req createServicesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := make([]ports.ServiceInput, 0, len(req.Services))
	for _, s := range req.Services {
		in = append(in, s.input())
	}

	existing, err := h.catalog.CreateServices(c.Request().Context(), p, c.Param("public_id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createServicesResponse{
		Message:          "Services have been added successfully",
		ExistingServices: nonNil(existing),
	})
}

// UpdateService handles PUT /API/service/update/:service_id.
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        service_id  path      int             true  "Service id"
// @Param        body        body      serviceRequest  true  "Service"
// @Success      200         {object}  messageResponse
// @Failure      403         {object}  messageResponse
// @Failure      404         {object}  messageResponse
// @Router       /API/service/update/{service_id} [put]
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "service_id")
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.catalog.UpdateService(c.Request().Context(), p, id, req.input()); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Service updated")
}

// DeleteService handles DELETE /API/service/delete/:service_id. Services
// with recorded sales cannot be deleted.
//
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        service_id  path      int  true  "Service id"
// @Success      200         {object}  messageResponse
// @Failure      403         {object}  messageResponse
// @Failure      409         {object}  messageResponse
// @Router       /API/service/delete/{service_id} [delete]
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "service_id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteService(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Service deleted")
}

// ListServices handles GET /API/services/all/:public_id. Only the API key is
// required.
//
// @Summary      List a shop's services
// @Tags         services
// @Produce      json
// @Security     ApiKeyAuth
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[domain.Service]
// @Failure      404        {object}  messageResponse
// @Router       /API/services/all/{public_id} [get]
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.catalog.ListServices(c.Request().Context(), c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.Service]{Data: nonNil(services)})
}

// RecordSale handles POST /API/sales/create/:public_id for owners and
// POST /API/sales/employee/create/:public_id for employees.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string       true  "Shop public id"
// @Param        body       body      saleRequest  true  "Sale"
// @Success      201        {object}  createdResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/sales/create/{public_id} [post]
// @Router       /API/sales/employee/create/{public_id} [post]
func (h *CatalogHandler) RecordSale(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sale, err := h.catalog.RecordSale(c.Request().Context(), p, c.Param("public_id"), ports.SaleInput{
		ServiceID:     req.ServiceID,
		PaymentMethod: req.PaymentMethod,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createdResponse{
		Message: "Sale has been recorded successfully.",
		ID:      sale.ID,
	})
}

// FetchSales handles GET /API/sales/fetch/:public_id/:month/:year. Amounts
// are the services' current charges.
//
// @Summary      List sales for a period
// @Tags         sales
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Param        month      path      string  true  "1-12 or all"
// @Param        year       path      string  true  "Year or all"
// @Success      200        {object}  dataResponse[domain.SaleView]
// @Failure      400        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/sales/fetch/{public_id}/{month}/{year} [get]
func (h *CatalogHandler) FetchSales(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	period, err := periodParams(c)
	if err != nil {
		return err
	}

	sales, err := h.catalog.FetchSales(c.Request().Context(), p, c.Param("public_id"), period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.SaleView]{Data: nonNil(sales)})
}

// DeleteSale handles DELETE /API/sales/delete/:sale_id.
//
// @Summary      Delete a sale
// @Tags         sales
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        sale_id  path      int  true  "Sale id"
// @Success      200      {object}  messageResponse
// @Failure      403      {object}  messageResponse
// @Router       /API/sales/delete/{sale_id} [delete]
func (h *CatalogHandler) DeleteSale(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "sale_id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteSale(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Sale deleted")
}
