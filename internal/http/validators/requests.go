package validators

import (
	"github.com/labstack/echo/v4"

	"taskmarket.com/taskmarket/internal/apperrors"
	dto "taskmarket.com/taskmarket/internal/data_models"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	var details []apperrors.Detail
	if r.FullName == "" {
		details = append(details, apperrors.Detail{Field: "fullName", Message: "fullName is required"})
	}
	if r.Email == "" {
		details = append(details, apperrors.Detail{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		details = append(details, apperrors.Detail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		return apperrors.Validation("Invalid input", details...)
	}
	return nil
}

func ValidateLoginRequest(r *dto.LoginRequest) error {
	var details []apperrors.Detail
	if r.Email == "" {
		details = append(details, apperrors.Detail{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		details = append(details, apperrors.Detail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		return apperrors.Validation("Invalid input", details...)
	}
	return nil
}

// RequireParam rejects requests whose path parameter is empty.
func RequireParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if v == "" {
		return "", apperrors.Validation("Invalid input", apperrors.Detail{
			Field: name, Message: name + " is required",
		})
	}
	return v, nil
}
