package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

const alertFailedMessage = "Inventory saved but the low stock email failed"

// InventoryHandler serves stock levels and equipment.
type InventoryHandler struct {
	inventory ports.InventoryService
	equipment ports.EquipmentService
}

func NewInventoryHandler(inventory ports.InventoryService, equipment ports.EquipmentService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, equipment: equipment}
}

type inventoryRequest struct {
	ProductName  string `json:"productName" validate:"required,notblank,max=50"`
	ProductLevel int    `json:"productLevel" validate:"required,min=1"`
}

type inventoryLevelRequest struct {
	ProductLevel int `json:"productLevel" validate:"required,min=1"`
}

type equipmentRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=50"`
	Description string `json:"description" validate:"max=255"`
	Price       int    `json:"price" validate:"gte=0"`
	BuyDate     string `json:"buyDate" validate:"omitempty,datetime=2006-01-02"`
}

// Create handles POST /API/inventory/create/:public_id. Products created at
// a low level raise an alert straight away.
//
// @Summary      Add a product to the inventory
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string            true  "Shop public id"
// @Param        body       body      inventoryRequest  true  "Product"
// @Success      201        {object}  createdResponse
// @Failure      502        {object}  createdResponse
// @Router       /API/inventory/create/{public_id} [post]
func (h *InventoryHandler) Create(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req inventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.inventory.Create(c.Request().Context(), p, c.Param("public_id"), req.ProductName, req.ProductLevel)
	if err != nil {
		if item != nil && errors.Is(err, domain.ErrDeliveryFailed) {
			return c.JSON(http.StatusBadGateway, createdResponse{Message: alertFailedMessage, ID: item.ID})
		}
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Product added to inventory", ID: item.ID})
}

// List handles GET /API/inventory/fetch/:public_id.
//
// @Summary      List inventory
// @Tags         inventory
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[domain.Inventory]
// @Router       /API/inventory/fetch/{public_id} [get]
func (h *InventoryHandler) List(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	items, err := h.inventory.List(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.Inventory]{Data: nonNil(items)})
}

// UpdateLevel handles PUT /API/inventory/update/:inventory_id.
//
// @Summary      Change a product's stock level
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        inventory_id  path      int                    true  "Inventory id"
// @Param        body          body      inventoryLevelRequest  true  "Level"
// @Success      200           {object}  messageResponse
// @Failure      502           {object}  messageResponse
// @Router       /API/inventory/update/{inventory_id} [put]
func (h *InventoryHandler) UpdateLevel(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "inventory_id")
	if err != nil {
		return err
	}

	var req inventoryLevelRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.inventory.UpdateLevel(c.Request().Context(), p, id, req.ProductLevel); err != nil {
		if errors.Is(err, domain.ErrDeliveryFailed) {
			return message(c, http.StatusBadGateway, alertFailedMessage)
		}
		return err
	}
	return message(c, http.StatusOK, "Inventory updated")
}

// Delete handles DELETE /API/inventory/delete/:inventory_id.
//
// @Summary      Remove a product
// @Tags         inventory
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        inventory_id  path      int  true  "Inventory id"
// @Success      200           {object}  messageResponse
// @Router       /API/inventory/delete/{inventory_id} [delete]
func (h *InventoryHandler) Delete(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "inventory_id")
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Product removed")
}

// CreateEquipment handles POST /API/equipments/create/:public_id.
//
// @Summary      Record equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string            true  "Shop public id"
// @Param        body       body      equipmentRequest  true  "Equipment"
// @Success      201        {object}  createdResponse
// @Router       /API/equipments/create/{public_id} [post]
func (h *InventoryHandler) CreateEquipment(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req equipmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := ports.EquipmentInput{Name: req.Name, Description: req.Description, Price: req.Price}
	if d := strings.TrimSpace(req.BuyDate); d != "" {
		// Format already checked by the validator.
		bought, _ := time.Parse(time.DateOnly, d)
		in.BoughtOn = &bought
	}

	eq, err := h.equipment.Create(c.Request().Context(), p, c.Param("public_id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Equipment Recorded", ID: eq.ID})
}

// ListEquipment handles GET /API/equipments/fetch/all/:public_id.
//
// @Summary      List equipment
// @Tags         equipment
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[domain.Equipment]
// @Router       /API/equipments/fetch/all/{public_id} [get]
func (h *InventoryHandler) ListEquipment(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	items, err := h.equipment.List(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.Equipment]{Data: nonNil(items)})
}

// MarkFaulty handles PUT /API/equipments/faulty/:equipment_id.
//
// @Summary      Flag equipment as faulty
// @Tags         equipment
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        equipment_id  path      int  true  "Equipment id"
// @Success      200           {object}  messageResponse
// @Router       /API/equipments/faulty/{equipment_id} [put]
func (h *InventoryHandler) MarkFaulty(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "equipment_id")
	if err != nil {
		return err
	}
	if err := h.equipment.MarkFaulty(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Equipment marked as faulty")
}

// RemoveEquipment handles DELETE /API/equipments/remove/:equipment_id.
//
// @Summary      Remove equipment
// @Tags         equipment
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        equipment_id  path      int  true  "Equipment id"
// @Success      200           {object}  messageResponse
// @Router       /API/equipments/remove/{equipment_id} [delete]
func (h *InventoryHandler) RemoveEquipment(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "equipment_id")
	if err != nil {
		return err
	}
	if err := h.equipment.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Equipment removed")
}
