package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskmarket.com/taskmarket/internal/data_models"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/http/validators"
	"taskmarket.com/taskmarket/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Create(c echo.Context) error {
	var req dto.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	report, err := h.reportService.Create(c.Request().Context(), caller.UserID, req.TargetType, req.TargetID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"report": report}})
}

func (h *ReportHandler) ListMine(c echo.Context) error {
	caller := middleware.Caller(c)
	reports, err := h.reportService.ListMine(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"reports": reports}})
}

func (h *ReportHandler) ListAll(c echo.Context) error {
	reports, err := h.reportService.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"reports": reports}})
}

func (h *ReportHandler) Resolve(c echo.Context) error {
	reportID, err := validators.RequireParam(c, "reportId")
	if err != nil {
		return err
	}

	var req dto.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	report, err := h.reportService.Resolve(c.Request().Context(), reportID, caller.UserID, req.Status, req.ResolutionNote)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"report": report}})
}
