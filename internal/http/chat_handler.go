package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "taskmarket.com/taskmarket/internal/data_models"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/http/validators"
	"taskmarket.com/taskmarket/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	taskID, err := validators.RequireParam(c, "taskId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	conversation, err := h.chatService.GetConversation(c.Request().Context(), taskID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"conversation": conversation}})
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	conversationID, err := validators.RequireParam(c, "conversationId")
	if err != nil {
		return err
	}

	caller := middleware.Caller(c)
	messages, err := h.chatService.ListMessages(c.Request().Context(), conversationID, caller.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"messages": messages}})
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	conversationID, err := validators.RequireParam(c, "conversationId")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	caller := middleware.Caller(c)
	message, err := h.chatService.SendMessage(c.Request().Context(), conversationID, caller.UserID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": echo.Map{"message": message}})
}
