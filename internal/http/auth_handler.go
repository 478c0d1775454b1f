package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskmarket.com/taskmarket/internal/data_models"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/http/validators"
	"taskmarket.com/taskmarket/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{
		"token": token,
		"user":  user,
	}})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{
		"token": token,
		"user":  user,
	}})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"loggedOut": true}})
}

func (h *AuthHandler) Me(c echo.Context) error {
	caller := middleware.Caller(c)
	user, err := h.authService.GetUser(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"user": user}})
}

func (h *AuthHandler) GetUser(c echo.Context) error {
	userID, err := validators.RequireParam(c, "userId")
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"user": user.Public()}})
}
