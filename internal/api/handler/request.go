package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mykinyozi/kinyozi-api/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

type dataResponse[T any] struct {
	Data []T `json:"data"`
}

func message(c echo.Context, code int, msg string) error {
	return c.JSON(code, messageResponse{Message: msg})
}

// bind decodes the request into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

// idParam reads an internal integer id from the path.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return uint(id), nil
}

// periodParams reads :month and :year. "all" selects every month or year.
func periodParams(c echo.Context) (domain.Period, error) {
	month, err := periodPart(c.Param("month"), "month", 12)
	if err != nil {
		return domain.Period{}, err
	}
	year, err := periodPart(c.Param("year"), "year", 9999)
	if err != nil {
		return domain.Period{}, err
	}
	return domain.Period{Month: month, Year: year}, nil
}

func periodPart(raw, name string, max int) (int, error) {
	if strings.EqualFold(raw, "all") {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("%w: %s must be \"all\" or between 1 and %d", domain.ErrValidation, name, max)
	}
	return n, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
