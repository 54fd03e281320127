package model

import "time"

// SubmissionOutcome records what the dependent-write protocol persisted.
// ParentID is empty when the parent create itself failed. A non-nil
// FirstFailureIndex marks the question whose create failed; everything
// before it remains persisted on the backend (no rollback is performed).
type SubmissionOutcome struct {
	ParentID           string   `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedQuestionIDs []string `json:"createdQuestionIds" bson:"createdQuestionIds"`
	FirstFailureIndex  *int     `json:"firstFailureIndex,omitempty" bson:"firstFailureIndex,omitempty"`
	Error              string   `json:"error,omitempty" bson:"error,omitempty"`
}

// Phase maps the outcome to the draft's terminal phase
func (o SubmissionOutcome) Phase() Phase {
	switch {
	case o.ParentID == "":
		return PhaseFailed
	case o.FirstFailureIndex != nil:
		return PhasePartiallyFailed
	default:
		return PhaseSucceeded
	}
}

// SubmissionRecord is the archived result of one submission run,
// including the draft snapshot that produced it.
type SubmissionRecord struct {
	ID          string                `json:"id" bson:"_id,omitempty"`
	DraftID     string                `json:"draftId" bson:"draftId"`
	AdminID     string                `json:"adminId" bson:"adminId"`
	Kind        ContentKind           `json:"kind" bson:"kind"`
	Outcome     SubmissionOutcome     `json:"outcome" bson:"outcome"`
	Draft       CompositeContentDraft `json:"draft" bson:"draft"`
	SubmittedAt time.Time             `json:"submittedAt" bson:"submittedAt"`
}
