package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskmarket.com/taskmarket/internal/data_models"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/http/validators"
	"taskmarket.com/taskmarket/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Submit(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.TaskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "taskId is required")
	}

	caller := middleware.Caller(c)
	review, created, err := h.reviewService.Submit(c.Request().Context(), req.TaskID, caller.UserID, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, echo.Map{"data": echo.Map{"review": review}})
}

func (h *ReviewHandler) ListForUser(c echo.Context) error {
	userID, err := validators.RequireParam(c, "userId")
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"reviews": reviews}})
}
