package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/api/middleware"
	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
	"github.com/mykinyozi/kinyozi-api/internal/core/ports"
)

// ExpenseHandler serves expense accounts and expenses.
type ExpenseHandler struct {
	expenses ports.ExpenseService
}

func NewExpenseHandler(expenses ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type expenseAccountRequest struct {
	Name        string `json:"accountName" validate:"required,notblank,max=50"`
	Description string `json:"accountDescription" validate:"max=255"`
}

type expenseRequest struct {
	AccountID   uint   `json:"expenseAccount" validate:"required"`
	Name        string `json:"expenseName" validate:"required,notblank,max=50"`
	Amount      int    `json:"expenseAmount" validate:"gte=0"`
	Description string `json:"expenseDescription" validate:"max=255"`
}

func (r expenseAccountRequest) input() ports.ExpenseAccountInput {
	return ports.ExpenseAccountInput{Name: r.Name, Description: r.Description}
}

func (r expenseRequest) input() ports.ExpenseInput {
	return ports.ExpenseInput{AccountID: r.AccountID, Name: r.Name, Amount: r.Amount, Description: r.Description}
}

// CreateAccount handles POST /API/expense-account/create/:public_id.
//
// @Summary      Create an expense account
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string                 true  "Shop public id"
// @Param        body       body      expenseAccountRequest  true  "Account"
// @Success      201        {object}  createdResponse
// @Failure      409        {object}  messageResponse
// @Router       /API/expense-account/create/{public_id} [post]
func (h *ExpenseHandler) CreateAccount(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req expenseAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	acc, err := h.expenses.CreateAccount(c.Request().Context(), p, c.Param("public_id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Expense account created", ID: acc.ID})
}

// ListAccounts handles GET /API/expense-accounts/fetch/:public_id.
//
// @Summary      List expense accounts
// @Tags         expenses
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Success      200        {object}  dataResponse[domain.ExpenseAccount]
// @Router       /API/expense-accounts/fetch/{public_id} [get]
func (h *ExpenseHandler) ListAccounts(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	accounts, err := h.expenses.ListAccounts(c.Request().Context(), p, c.Param("public_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.ExpenseAccount]{Data: nonNil(accounts)})
}

// UpdateAccount handles PUT /API/expense-accounts/update/:account_id.
//
// @Summary      Update an expense account
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        account_id  path      int                    true  "Account id"
// @Param        body        body      expenseAccountRequest  true  "Account"
// @Success      200         {object}  messageResponse
// @Router       /API/expense-accounts/update/{account_id} [put]
func (h *ExpenseHandler) UpdateAccount(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "account_id")
	if err != nil {
		return err
	}

	var req expenseAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.expenses.UpdateAccount(c.Request().Context(), p, id, req.input()); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Expense account updated")
}

// DeleteAccount handles DELETE /API/expense-accounts/delete/:account_id.
// Accounts with recorded expenses cannot be deleted.
//
// @Summary      Delete an expense account
// @Tags         expenses
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        account_id  path      int  true  "Account id"
// @Success      200         {object}  messageResponse
// @Failure      409         {object}  messageResponse
// @Router       /API/expense-accounts/delete/{account_id} [delete]
func (h *ExpenseHandler) DeleteAccount(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "account_id")
	if err != nil {
		return err
	}
	if err := h.expenses.DeleteAccount(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Expense account deleted")
}

// FetchExpenses handles GET /API/expenses/fetch/:public_id/:month/:year.
//
// @Summary      List expenses for a period
// @Tags         expenses
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string  true  "Shop public id"
// @Param        month      path      string  true  "1-12 or all"
// @Param        year       path      string  true  "Year or all"
// @Success      200        {object}  dataResponse[domain.Expense]
// @Router       /API/expenses/fetch/{public_id}/{month}/{year} [get]
func (h *ExpenseHandler) FetchExpenses(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	period, err := periodParams(c)
	if err != nil {
		return err
	}

	expenses, err := h.expenses.FetchExpenses(c.Request().Context(), p, c.Param("public_id"), period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse[domain.Expense]{Data: nonNil(expenses)})
}

// CreateExpense handles POST /API/expense/create/:public_id.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        public_id  path      string          true  "Shop public id"
// @Param        body       body      expenseRequest  true  "Expense"
// @Success      201        {object}  createdResponse
// @Failure      403        {object}  messageResponse
// @Router       /API/expense/create/{public_id} [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	exp, err := h.expenses.CreateExpense(c.Request().Context(), p, c.Param("public_id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Expense recorded", ID: exp.ID})
}

// UpdateExpense handles PUT /API/expense/update/:expense_id.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        expense_id  path      int             true  "Expense id"
// @Param        body        body      expenseRequest  true  "Expense"
// @Success      200         {object}  messageResponse
// @Router       /API/expense/update/{expense_id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "expense_id")
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.expenses.UpdateExpense(c.Request().Context(), p, id, req.input()); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Expense updated")
}

// DeleteExpense handles DELETE /API/expense/delete/:expense_id.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Security     ApiKeyAuth
// @Security     AccessToken
// @Param        expense_id  path      int  true  "Expense id"
// @Success      200         {object}  messageResponse
// @Router       /API/expense/delete/{expense_id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "expense_id")
	if err != nil {
		return err
	}
	if err := h.expenses.DeleteExpense(c.Request().Context(), p, id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Expense deleted")
}
