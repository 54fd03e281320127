package model

// NotificationLevel is the severity of a user-facing notification
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Notification codes
const (
	NoteListMinReached     = "list_min_reached"
	NoteValidationFailed   = "validation_failed"
	NoteUploadRejected     = "upload_rejected"
	NoteUploadComplete     = "upload_complete"
	NoteUploadFailed       = "upload_failed"
	NoteSubmissionProgress = "submission_progress"
	NoteSubmissionComplete = "submission_complete"
)

// Notification is a discrete event consumed by the presentation layer.
// Transient by design; nothing here is persisted to a log.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	// Field is set for phase-1 validation failures
	Field string `json:"field,omitempty"`
	// QuestionIndex is set for phase-2 failures and list-edit rejections
	QuestionIndex *int `json:"questionIndex,omitempty"`
}
