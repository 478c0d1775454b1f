package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmarket.com/taskmarket/internal/apperrors"
)

type errorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []apperrors.Detail `json:"details"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// ErrorHandler renders every failure as the {error:{code,message,details}}
// envelope. Classified errors pass through verbatim; anything else is logged
// and reported as a generic internal error.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errorBody{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "Something went wrong",
			Details: []apperrors.Detail{},
		}

		var httpErr *echo.HTTPError
		if appErr, ok := apperrors.As(err); ok {
			status = appErr.StatusCode
			body.Code = appErr.Code
			body.Message = appErr.Message
			if appErr.Details != nil {
				body.Details = appErr.Details
			}
		} else if errors.As(err, &httpErr) {
			status = httpErr.Code
			body.Code = codeForStatus(httpErr.Code)
			if msg, ok := httpErr.Message.(string); ok {
				body.Message = msg
			}
		} else {
			log.Printf("unhandled error: %v", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorEnvelope{Error: body})
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
