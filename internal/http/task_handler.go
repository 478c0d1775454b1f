package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskmarket.com/taskmarket/internal/data_models"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/http/validators"
	"taskmarket.com/taskmarket/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	task, err := h.taskService.Create(c.Request().Context(), caller.UserID, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		BudgetAmount: req.BudgetAmount,
		Currency:     req.Currency,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"task": task}})
}

func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.taskService.List(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"tasks": tasks}})
}

func (h *TaskHandler) ListMine(c echo.Context) error {
	caller := middleware.Caller(c)
	tasks, err := h.taskService.ListMine(c.Request().Context(), caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"tasks": tasks}})
}

func (h *TaskHandler) Get(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	task, offers, err := h.taskService.Get(c.Request().Context(), taskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task, "offers": offers}})
}

func (h *TaskHandler) Update(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	task, err := h.taskService.Update(c.Request().Context(), taskID, caller.UserID, services.UpdateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		BudgetAmount: req.BudgetAmount,
		Currency:     req.Currency,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task}})
}

func (h *TaskHandler) Cancel(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	task, err := h.taskService.Cancel(c.Request().Context(), taskID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task}})
}

func (h *TaskHandler) RequestModification(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.RequestModificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.taskService.RequestModification(c.Request().Context(), taskID, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task}})
}

func (h *TaskHandler) AdminDelete(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	if err := h.taskService.AdminDelete(c.Request().Context(), taskID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"deleted": true, "taskId": taskID}})
}

func (h *TaskHandler) SubmitOffer(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	var req dto.CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	offer, err := h.taskService.SubmitOffer(c.Request().Context(), taskID, caller.UserID, req.Amount, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"offer": offer}})
}

func (h *TaskHandler) WithdrawOffer(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}
	offerID, err := validators.RequireParam(c, "offerId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	offer, err := h.taskService.WithdrawOffer(c.Request().Context(), taskID, offerID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"offer": offer}})
}

func (h *TaskHandler) AcceptOffer(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}
	offerID, err := validators.RequireParam(c, "offerId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	task, offer, err := h.taskService.AcceptOffer(c.Request().Context(), taskID, offerID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task, "offer": offer}})
}

func (h *TaskHandler) SubmitWork(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	task, err := h.taskService.SubmitWork(c.Request().Context(), taskID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task}})
}

func (h *TaskHandler) ConfirmOffline(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	task, err := h.taskService.ConfirmOffline(c.Request().Context(), taskID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"task": task}})
}
