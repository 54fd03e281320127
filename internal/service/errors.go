package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDraftNotFound is returned when no active session has the given ID
	ErrDraftNotFound = errors.New("draft not found")
	// ErrSubmitInFlight rejects re-invocation while a submission is running
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrNotEditable rejects edits on a submitting or succeeded draft
	ErrNotEditable = errors.New("draft is not editable in its current phase")
	// ErrWrongPhase rejects a transition not valid for the draft's phase
	ErrWrongPhase = errors.New("transition not allowed in current phase")
)

// StructuralError reports the first offending question found by phase-2
// validation. It blocks submit; the draft stays in Questions.
type StructuralError struct {
	QuestionIndex int
	Reason        string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("question %d: %s", e.QuestionIndex+1, e.Reason)
}

// Upload rejection reasons, checked locally before any network call
const (
	RejectWrongType = "wrong-type"
	RejectTooLarge  = "too-large"
)

// UploadRejectedError is a local pre-flight rejection of an upload
type UploadRejectedError struct {
	Reason string
}

func (e *UploadRejectedError) Error() string {
	return "upload rejected: " + e.Reason
}

// UploadError is a media-host failure. The draft's asset field is left
// untouched; a previously attached asset survives a failed retry.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return "upload failed: " + e.Message
}

// ParentCreateError aborts a submission atomically; nothing was persisted
type ParentCreateError struct {
	Err error
}

func (e *ParentCreateError) Error() string {
	return "parent create failed: " + e.Err.Error()
}

func (e *ParentCreateError) Unwrap() error { return e.Err }

// ChildCreateError is a partial failure: the parent and all children
// before Index remain persisted; the remainder was abandoned.
type ChildCreateError struct {
	Index int
	Err   error
}

func (e *ChildCreateError) Error() string {
	return fmt.Sprintf("question create failed at index %d: %v", e.Index, e.Err)
}

func (e *ChildCreateError) Unwrap() error { return e.Err }
