package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

// EmployeeHandler serves employee onboarding, login and management.
type EmployeeHandler struct {
	employees ports.EmployeeService
}

func NewEmployeeHandler(employees ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

type createEmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required,notblank,max=50"`
	LastName  string `json:"lastName" validate:"required,notblank,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Role      string `json:"role" validate:"required,max=30"`
	Salary    *int   `json:"salary" validate:"omitempty,gte=0"`
	Phone     string `json:"phone" validate:"max=20"`
}

type createEmployeeResponse struct {
	Message  string `json:"message"`
	PublicID string `json:"public_id"`
}

type employeeResponse struct {
	PublicID  string    `json:"public_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Salary    *int      `json:"salary"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	State     string    `json:"credential_state"`
	CreatedAt time.Time `json:"created_at"`
}

func newEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		PublicID:  e.PublicID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Role:      e.Role,
		Salary:    e.Salary,
		Phone:     e.Phone,
		Active:    e.Active,
		State:     string(e.State()),
		CreatedAt: e.CreatedAt,
	}
}

// Create handles POST /API/employees/create/:public_id. A failed onboarding
// email still leaves the employee stored; the response is 502 and carries
// the new public id so the invite can be resent.
//
// @Summary      Add an employee and send the setup link
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string                 true  "Shop public id"
// @Param        body       body      createEmployeeRequest  true  "Employee details"
// @Success      201        {object}  createEmployeeResponse
// @Failure      403        {object}  messageResponse
// @Failure      409        {object}  messageResponse
// @Failure      502        {object}  createEmployeeResponse
// @Router       /API/employees/create/{public_id} [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	emp, err := h.employees.Create(c.Request().Context(), p, c.Param("public_id"), ports.CreateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		Salary:    req.Salary,
		Phone:     req.Phone,
	})
	if err != nil {
		if emp != nil && errors.Is(err, domain.ErrDeliveryFailed) {
			return c.JSON(http.StatusBadGateway, createEmployeeResponse{
				Message:  "Employee created but onboarding email failed. Resend the invite",
				PublicID: emp.PublicID,
			})
		}
		return err
	}

	return c.JSON(http.StatusCreated, createEmployeeResponse{
		Message:  "Employee created. Setup link sent to their email",
		PublicID: emp.PublicID,
	})
}

// List handles GET /API/employees/fetch/all/:public_id.
//
// @Summary      List a shop's employees
// @Tags         employees
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[employeeResponse]
// @Failure      403        {object}  messageResponse
// @Router       /API/employees/fetch/all/{public_id} [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	employees, err := h.employees.List(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}

	out := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, newEmployeeResponse(&employees[i]))
	}
	return c.JSON(http.StatusOK, dataResponse[employeeResponse]{Data: out})
}

// Delete handles DELETE /API/employees/delete/:employee_id.
//
// @Summary      Remove an employee
// @Tags         employees
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        employee_id  path      string  true  "Employee public id"
// @Success      200          {object}  messageResponse
// @Failure      403          {object}  messageResponse
// @Failure      404          {object}  messageResponse
// @Router       /API/employees/delete/{employee_id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	if err := h.employees.Delete(c.Request().Context(), p, c.Param("employee_id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Employee removed")
}

// ResendInvite handles POST /API/employees/invite/:employee_id.
//
// @Summary      Resend the onboarding email
// @Tags         employees
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        employee_id  path      string  true  "Employee public id"
// @Success      200          {object}  messageResponse
// @Failure      409          {object}  messageResponse
// @Failure      502          {object}  messageResponse
// @Router       /API/employees/invite/{employee_id} [post]
func (h *EmployeeHandler) ResendInvite(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	if err := h.employees.ResendInvite(c.Request().Context(), p, c.Param("employee_id")); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Setup link sent")
}

// SetupPassword handles POST /API/employees/setup/:token.
//
// @Summary      Set the first password from an onboarding link
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        token  path      string           true  "Setup token"
// @Param        body   body      passwordRequest  true  "Password"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  messageResponse
// @Failure      409    {object}  messageResponse
// @Router       /API/employees/setup/{token} [post]
func (h *EmployeeHandler) SetupPassword(c echo.Context) error {
	var req passwordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.employees.SetupPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Account setup complete. You can now login")
}

// Login handles POST /API/employees/login.
//
// @Summary      Employee login
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      loginRequest  false  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  messageResponse
// @Router       /API/employees/login [post]
func (h *EmployeeHandler) Login(c echo.Context) error {
	email, password, err := credentials(c)
	if err != nil {
		return err
	}

	res, err := h.employees.Login(c.Request().Context(), email, password)
	metrics.LoginsTotal.WithLabelValues(string(domain.RoleEmployee), loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newLoginResponse(res))
}

// ChangePassword handles POST /API/employees/password/change.
//
// @Summary      Change the employee password
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /API/employees/password/change [post]
func (h *EmployeeHandler) ChangePassword(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.employees.ChangePassword(c.Request().Context(), p, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Password Change Successful")
}
