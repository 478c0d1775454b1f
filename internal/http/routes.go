package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskmarket.com/taskmarket/internal/constants"
	middleware "taskmarket.com/taskmarket/internal/http/middlewares"
	"taskmarket.com/taskmarket/internal/services"
)

type Handlers struct {
	Auth    *AuthHandler
	Tasks   *TaskHandler
	Chat    *ChatHandler
	Reviews *ReviewHandler
	Reports *ReportHandler
}

func Register(e *echo.Echo, h Handlers, authService *services.AuthService, rateLimitPerMinute int) {
	e.HTTPErrorHandler = ErrorHandler()
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	requireAuth := middleware.RequireAuth(authService)
	requireAdmin := middleware.RequireRole(constants.RoleAdmin)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"data": echo.Map{"status": "ok"}})
	})

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.POST("/auth/logout", h.Auth.Logout, requireAuth)
	e.GET("/auth/me", h.Auth.Me, requireAuth)

	e.GET("/users/:userId", h.Auth.GetUser)

	e.POST("/tasks", h.Tasks.Create, requireAuth)
	e.GET("/tasks", h.Tasks.List)
	e.GET("/tasks/mine", h.Tasks.ListMine, requireAuth)
	e.GET("/tasks/:taskId", h.Tasks.Get)
	e.PATCH("/tasks/:taskId", h.Tasks.Update, requireAuth)
	e.POST("/tasks/:taskId/cancel", h.Tasks.Cancel, requireAuth)
	e.POST("/tasks/:taskId/admin-request-modification", h.Tasks.RequestModification, requireAuth, requireAdmin)
	e.DELETE("/tasks/:taskId/admin-delete", h.Tasks.AdminDelete, requireAuth, requireAdmin)
	e.POST("/tasks/:taskId/offers", h.Tasks.SubmitOffer, requireAuth)
	e.POST("/tasks/:taskId/offers/:offerId/withdraw", h.Tasks.WithdrawOffer, requireAuth)
	e.POST("/tasks/:taskId/offers/:offerId/accept", h.Tasks.AcceptOffer, requireAuth)
	e.POST("/tasks/:taskId/work-submitted", h.Tasks.SubmitWork, requireAuth)
	e.POST("/tasks/:taskId/confirm-offline", h.Tasks.ConfirmOffline, requireAuth)

	e.POST("/chat/tasks/:taskId/conversation", h.Chat.GetConversation, requireAuth)
	e.GET("/chat/conversations/:conversationId/messages", h.Chat.ListMessages, requireAuth)
	e.POST("/chat/conversations/:conversationId/messages", h.Chat.SendMessage, requireAuth)

	e.POST("/reviews", h.Reviews.Submit, requireAuth)
	e.GET("/reviews/user/:userId", h.Reviews.ListForUser)

	e.POST("/reports", h.Reports.Create, requireAuth)
	e.GET("/reports/mine", h.Reports.ListMine, requireAuth)
	e.GET("/reports", h.Reports.ListAll, requireAuth, requireAdmin)
	e.POST("/reports/:reportId/resolve", h.Reports.Resolve, requireAuth, requireAdmin)
}
