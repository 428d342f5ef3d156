package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ait/forum/internal/api/metrics"
	"github.com/ait/forum/internal/core/ports"
)

// HeaderPassword carries the new password on PUT /account/password.
const HeaderPassword = "X-Password"

// HeaderToken carries the bearer token issued on POST /account/login.
const HeaderToken = "X-Token"

// AccountHandler handles HTTP requests for account operations.
type AccountHandler struct {
	service ports.AccountService
	auth    ports.AuthService
}

func NewAccountHandler(service ports.AccountService, auth ports.AuthService) *AccountHandler {
	return &AccountHandler{service: service, auth: auth}
}

// Register handles POST /account/register.
//
// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.Inc()
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Login handles POST /account/login. Credentials were already checked by the
// Auth middleware; a fresh bearer token is returned in the X-Token header.
//
// @Summary      Log in
// @Tags         accounts
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  accountResponse
// @Header       200  {string}  X-Token  "Bearer token"
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return err
	}

	token, err := h.auth.IssueToken(account)
	if err != nil {
		return err
	}

	c.Response().Header().Set(HeaderToken, token)
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Get handles GET /account/user/:login.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Login"
// @Success      200    {object}  accountResponse
// @Failure      404    {object}  map[string]string
// @Router       /account/user/{login} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.service.Get(c.Request().Context(), c.Param("login"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Remove handles DELETE /account/user/:login.
//
// @Summary      Remove an account
// @Tags         accounts
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Login"
// @Success      200    {object}  accountResponse
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /account/user/{login} [delete]
func (h *AccountHandler) Remove(c echo.Context) error {
	account, err := h.service.Remove(c.Request().Context(), c.Param("login"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// Update handles PUT /account/user/:login.
//
// @Summary      Update first and last name
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string                true  "Login"
// @Param        body   body      updateAccountRequest  true  "Fields to change"
// @Success      200    {object}  accountResponse
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /account/user/{login} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.service.Update(c.Request().Context(), c.Param("login"), toUpdateAccountInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// AddRole handles PUT /account/user/:login/role/:role.
//
// @Summary      Grant a role
// @Tags         accounts
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Login"
// @Param        role   path      string  true  "Role (USER, MODERATOR, ADMINISTRATOR)"
// @Success      200    {object}  rolesResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /account/user/{login}/role/{role} [put]
func (h *AccountHandler) AddRole(c echo.Context) error {
	return h.changeRole(c, true)
}

// RemoveRole handles DELETE /account/user/:login/role/:role.
//
// @Summary      Revoke a role
// @Tags         accounts
// @Produce      json
// @Security     BasicAuth
// @Param        login  path      string  true  "Login"
// @Param        role   path      string  true  "Role (USER, MODERATOR, ADMINISTRATOR)"
// @Success      200    {object}  rolesResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /account/user/{login}/role/{role} [delete]
func (h *AccountHandler) RemoveRole(c echo.Context) error {
	return h.changeRole(c, false)
}

func (h *AccountHandler) changeRole(c echo.Context, add bool) error {
	login := c.Param("login")
	change, err := h.service.ChangeRole(c.Request().Context(), login, c.Param("role"), add)
	if err != nil {
		return err
	}

	if change.Changed {
		action := "remove"
		if add {
			action = "add"
		}
		metrics.RoleChangesTotal.WithLabelValues(string(change.Role), action).Inc()
	}

	return c.JSON(http.StatusOK, toRolesResponse(login, change.Roles))
}

// ChangePassword handles PUT /account/password.
//
// @Summary      Change the caller's password
// @Tags         accounts
// @Security     BasicAuth
// @Param        X-Password  header  string  true  "New password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /account/password [put]
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	account, err := caller(c)
	if err != nil {
		return err
	}

	password := c.Request().Header.Get(HeaderPassword)
	if password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "X-Password header is required")
	}

	if err := h.service.ChangePassword(c.Request().Context(), account.Login, password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
