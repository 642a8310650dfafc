package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type notificationRequest struct {
	Title   string `json:"title" validate:"required,notblank,max=100"`
	Message string `json:"message" validate:"required,max=255"`
	ShopID  string `json:"shopId" validate:"required"`
}

// Create handles POST /API/notifications/create. Trusted callers address
// the shop by its public id and need only the API key.
//
// @Summary      Send a notification to a shop
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      notificationRequest  true  "Notification"
// @Success      201   {object}  createdResponse
// @Failure      404   {object}  messageResponse
// @Router       /API/notifications/create [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	var req notificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	n, err := h.notifications.Create(c.Request().Context(), req.ShopID, req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Notification Sent", ID: n.ID})
}

// MarkRead handles PUT /API/notifications/read/:notification_id.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        notification_id  path      int  true  "Notification id"
// @Success      200              {object}  messageResponse
// @Router       /API/notifications/read/{notification_id} [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "notification_id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Notification read")
}

// List handles GET /API/notifications/fetch/all/:public_id.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[domain.Notification]
// @Router       /API/notifications/fetch/all/{public_id} [get]
func (h *NotificationHandler) List(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	items, err := h.notifications.List(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.Notification]{Data: nonNil(items)})
}

// Get handles GET /API/notifications/fetch/:notification_id.
//
// @Summary      Get a notification
// @Tags         notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        notification_id  path      int  true  "Notification id"
// @Success      200              {object}  domain.Notification
// @Router       /API/notifications/fetch/{notification_id} [get]
func (h *NotificationHandler) Get(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "notification_id")
	if err != nil {
		return err
	}

	n, err := h.notifications.Get(c.Request().Context(), p, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

// Delete handles DELETE /API/notifications/delete/:notification_id.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        notification_id  path      int  true  "Notification id"
// @Success      200              {object}  messageResponse
// @Router       /API/notifications/delete/{notification_id} [delete]
func (h *NotificationHandler) Delete(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "notification_id")
	if err != nil {
		return err
	}
	if err := h.notifications.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Notification deleted")
}
