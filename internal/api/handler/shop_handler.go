package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

// ShopHandler serves the shop owner account endpoints.
type ShopHandler struct {
	shops ports.ShopService
}

func NewShopHandler(shops ports.ShopService) *ShopHandler {
	return &ShopHandler{shops: shops}
}

// --- Request / Response types ---

type registerShopRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"required,max=20"`
	County   string `json:"county" validate:"required,max=50"`
	City     string `json:"city" validate:"required,max=50"`
}

type registerShopResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token        string `json:"token"`
	PublicID     string `json:"public_id"`
	ShopPublicID string `json:"shop_public_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
}

type updateShopRequest struct {
	Name   string `json:"shop_name" validate:"required,notblank,max=50"`
	Email  string `json:"email" validate:"required,email,max=100"`
	Phone  string `json:"phone" validate:"required,max=20"`
	County string `json:"county" validate:"required,max=50"`
	City   string `json:"city" validate:"required,max=50"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email,max=100"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type verifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func newLoginResponse(r *ports.LoginResult) loginResponse {
	return loginResponse{
		Token:        r.Token,
		PublicID:     r.PublicID,
		ShopPublicID: r.ShopPublicID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         r.Role,
	}
}

// Register handles POST /API/create/shop.
//
// @Summary      Register a barbershop
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      registerShopRequest  true  "Shop details"
// @Success      201   {object}  registerShopResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /API/create/shop [post]
func (h *ShopHandler) Register(c echo.Context) error {
	var req registerShopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	shop, err := h.shops.Register(c.Request().Context(), ports.RegisterShopInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		County:   req.County,
		City:     req.City,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerShopResponse{
		Message: "Account Created successfully",
		ID:      shop.PublicID,
	})
}

// Login handles POST /API/login/shop. Credentials come from a JSON body or,
// when the body has none, from HTTP Basic auth.
//
// @Summary      Shop owner login
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      loginRequest  false  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  messageResponse
// @Router       /API/login/shop [post]
func (h *ShopHandler) Login(c echo.Context) error {
	email, password, err := credentials(c)
	if err != nil {
		return err
	}

	res, err := h.shops.Login(c.Request().Context(), email, password)
	metrics.LoginsTotal.WithLabelValues(string(domain.RoleShop), loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newLoginResponse(res))
}

// Search handles GET /API/shops/all?name=.
//
// @Summary      Search barbershops by name
// @Tags         shop
// @Produce      json
// @Security     ApiKeyAuth
// @Param        name  query     string  false  "Name fragment"
// @Success      200   {object}  dataResponse[domain.ShopInfo]
// @Router       /API/shops/all [get]
func (h *ShopHandler) Search(c echo.Context) error {
	shops, err := h.shops.Search(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.ShopInfo]{Data: nonNil(shops)})
}

// Update handles POST /API/shop/update/:public_id.
//
// @Summary      Update shop details
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string             true  "Shop public id"
// @Param        body       body      updateShopRequest  true  "New details"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/shop/update/{public_id} [post]
func (h *ShopHandler) Update(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req updateShopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err = h.shops.Update(c.Request().Context(), p, c.Param("public_id"), ports.UpdateShopInput{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		County: req.County,
		City:   req.City,
	})
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Update Successful")
}

// Delete handles DELETE /API/shop/:public_id. Every record of the shop goes
// with it.
//
// @Summary      Delete a shop and all its data
// @Tags         shop
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/shop/{public_id} [delete]
func (h *ShopHandler) Delete(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	if err := h.shops.Delete(c.Request().Context(), p, c.Param("public_id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Shop deleted")
}

// ChangePassword handles POST /API/shop/password/change/:public_id.
//
// @Summary      Change the owner password
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string                 true  "Shop public id"
// @Param        body       body      changePasswordRequest  true  "Old and new password"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Router       /API/shop/password/change/{public_id} [post]
func (h *ShopHandler) ChangePassword(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.shops.ChangePassword(c.Request().Context(), p, c.Param("public_id"), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Password Change Successful")
}

// RequestPasswordReset handles POST /API/shop/password/request-reset.
//
// @Summary      Email a password reset link
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      requestResetRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      502   {object}  messageResponse
// @Router       /API/shop/password/request-reset [post]
func (h *ShopHandler) RequestPasswordReset(c echo.Context) error {
	var req requestResetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.shops.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Reset link has been sent to your email.")
}

// ResetPassword handles POST /API/shop/password/reset/:token.
//
// @Summary      Set a new password with a reset token
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        token  path      string           true  "Reset token"
// @Param        body   body      passwordRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  messageResponse
// @Router       /API/shop/password/reset/{token} [post]
func (h *ShopHandler) ResetPassword(c echo.Context) error {
	var req passwordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.shops.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Password reset successful")
}

// VerifyToken handles POST /API/token/verify.
//
// @Summary      Check a shop session token
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      verifyTokenRequest  true  "Token"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /API/token/verify [post]
func (h *ShopHandler) VerifyToken(c echo.Context) error {
	var req verifyTokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.shops.VerifyToken(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Valid Token")
}

// credentials reads login credentials from the JSON body, falling back to
// HTTP Basic auth.
func credentials(c echo.Context) (string, string, error) {
	var req loginRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	if req.Email == "" && req.Password == "" {
		if user, pass, ok := c.Request().BasicAuth(); ok {
			req.Email, req.Password = user, pass
		}
	}
	if req.Email == "" || req.Password == "" {
		return "", "", domain.ErrInvalidCredentials
	}
	return req.Email, req.Password, nil
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrPasswordNotSet):
		return "password_not_set"
	default:
		return "error"
	}
}
