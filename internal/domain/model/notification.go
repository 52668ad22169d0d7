package model

import "time"

// NotificationRequest is a transient value handed to the dispatcher. It is
// never persisted: a failed delivery is simply not sent.
type NotificationRequest struct {
	To      string
	Subject string
	Body    string
}

// ReportRun records that the monthly summary job completed for a period
// ("2006-01"). It is run bookkeeping only; individual notifications stay
// unpersisted and best-effort.
type ReportRun struct {
	ID                  string
	Period              string
	UsersProcessed      int
	NotificationsQueued int
	CompletedAt         time.Time
}
