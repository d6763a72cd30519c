package types

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is a user-visible message (a toast). Title is "Success" or "Error"
// for the outcomes of directory operations.
type Notification struct {
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

func Success(message string) Notification {
	return Notification{Severity: SeveritySuccess, Title: "Success", Message: message, At: time.Now()}
}

func Failure(message string) Notification {
	return Notification{Severity: SeverityError, Title: "Error", Message: message, At: time.Now()}
}
