package constants

type TaskStatus string

const (
	TaskOpen          TaskStatus = "open"
	TaskAssigned      TaskStatus = "assigned"
	TaskWorkSubmitted TaskStatus = "work_submitted"
	TaskClosed        TaskStatus = "closed"
	TaskCancelled     TaskStatus = "cancelled"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskOpen, TaskAssigned, TaskWorkSubmitted, TaskClosed, TaskCancelled:
		return true
	}
	return false
}

type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferWithdrawn OfferStatus = "withdrawn"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
)

type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type ReportTargetType string

const (
	ReportTargetTask ReportTargetType = "task"
	ReportTargetUser ReportTargetType = "user"
)
