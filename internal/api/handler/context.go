package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/api/middleware"
	"github.com/ait/forum/internal/core/domain"
)

// caller returns the account resolved by the Auth middleware. Its absence
// means the route was registered without Auth, so reject with 401.
func caller(c echo.Context) (*domain.Account, error) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}

// bindAndValidate binds the request body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
