package dto

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	BudgetAmount float64 `json:"budgetAmount"`
	Currency     string  `json:"currency"`
}

type UpdateTaskRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	BudgetAmount *float64 `json:"budgetAmount"`
	Currency     *string  `json:"currency"`
}

type RequestModificationRequest struct {
	Note string `json:"note"`
}

type CreateOfferRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

type CreateReviewRequest struct {
	TaskID  string `json:"taskId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CreateReportRequest struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	Reason     string `json:"reason"`
}

type ResolveReportRequest struct {
	Status         string `json:"status"`
	ResolutionNote string `json:"resolutionNote"`
}
