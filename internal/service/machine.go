package service

import (
	"time"

	"github.com/google/uuid"

	"examforge/internal/model"
)

// Pure transition functions over CompositeContentDraft values. Each
// returns a new draft; the input is never mutated. This keeps the whole
// wizard unit-testable with no storage or transport attached.

// NewDraft starts an authoring session in the parent-fields phase with
// one default-shaped question, so questions.length >= 1 always holds.
func NewDraft(adminID string, kind model.ContentKind, lessonID string) model.CompositeContentDraft {
	now := time.Now()
	return model.CompositeContentDraft{
		ID:        uuid.New().String(),
		AdminID:   adminID,
		Kind:      kind,
		Phase:     model.PhaseParentFields,
		LessonID:  lessonID,
		Questions: []model.QuestionDraft{model.NewQuestionDraft(kind.Shape(), 1)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func cloneDraft(d model.CompositeContentDraft) model.CompositeContentDraft {
	out := d
	out.Questions = make([]model.QuestionDraft, len(d.Questions))
	for i, q := range d.Questions {
		out.Questions[i] = q.Clone()
	}
	out.UpdatedAt = time.Now()
	return out
}

// Advance runs phase-1 validation and moves ParentFields → Questions.
// On failure the draft is returned unchanged with the field error map.
func Advance(d model.CompositeContentDraft) (model.CompositeContentDraft, map[string]string, error) {
	if d.Phase != model.PhaseParentFields {
		return d, nil, ErrWrongPhase
	}
	if errs := ValidateParent(d); len(errs) > 0 {
		return d, errs, nil
	}
	out := cloneDraft(d)
	out.Phase = model.PhaseQuestions
	return out, nil, nil
}

// Retreat moves Questions → ParentFields. Neither phase's edits are
// discarded; the question list survives back-navigation.
func Retreat(d model.CompositeContentDraft) (model.CompositeContentDraft, error) {
	if d.Phase != model.PhaseQuestions {
		return d, ErrWrongPhase
	}
	out := cloneDraft(d)
	out.Phase = model.PhaseParentFields
	return out, nil
}

// SetParent replaces the editable parent fields. Attached assets are
// owned by the upload flow and carried over untouched.
func SetParent(d model.CompositeContentDraft, fields model.ParentFields) (model.CompositeContentDraft, error) {
	if !d.Phase.Editable() {
		return d, ErrNotEditable
	}
	fields.Asset = d.Parent.Asset
	fields.Thumbnail = d.Parent.Thumbnail
	out := cloneDraft(d)
	out.Parent = fields
	return out, nil
}

// AttachAsset sets an uploaded asset on the given slot. Only called
// after a successful upload, so a failed retry never reaches here and
// the prior asset survives.
func AttachAsset(d model.CompositeContentDraft, slot model.AssetSlot, asset model.UploadedAsset) (model.CompositeContentDraft, error) {
	if !d.Phase.Editable() {
		return d, ErrNotEditable
	}
	out := cloneDraft(d)
	a := asset
	switch slot {
	case model.SlotPrimary:
		out.Parent.Asset = &a
		if a.DurationSeconds > 0 && out.Parent.DurationSeconds == 0 {
			out.Parent.DurationSeconds = int(a.DurationSeconds)
		}
	case model.SlotThumbnail:
		out.Parent.Thumbnail = &a
	default:
		return d, ErrWrongPhase
	}
	return out, nil
}

// AddQuestion appends a default-shaped question. Order defaults to the
// next list position but remains independently editable afterwards.
func AddQuestion(d model.CompositeContentDraft) (model.CompositeContentDraft, error) {
	if !d.Phase.Editable() {
		return d, ErrNotEditable
	}
	out := cloneDraft(d)
	out.Questions = appendItem(out.Questions, model.NewQuestionDraft(d.Kind.Shape(), len(out.Questions)+1))
	return out, nil
}

// RemoveQuestion excises the question at index. Removing the last
// remaining question is rejected and the draft returned unchanged.
func RemoveQuestion(d model.CompositeContentDraft, index int) (model.CompositeContentDraft, bool, error) {
	if !d.Phase.Editable() {
		return d, false, ErrNotEditable
	}
	out := cloneDraft(d)
	questions, ok := removeItem(out.Questions, index, model.MinQuestions)
	if !ok {
		return d, false, nil
	}
	out.Questions = questions
	return out, true, nil
}

// UpdateQuestion replaces the question at index with the given value.
// The stored copy never shares option storage with the caller's value.
func UpdateQuestion(d model.CompositeContentDraft, index int, q model.QuestionDraft) (model.CompositeContentDraft, error) {
	if !d.Phase.Editable() {
		return d, ErrNotEditable
	}
	if index < 0 || index >= len(d.Questions) {
		return d, ErrDraftNotFound
	}
	out := cloneDraft(d)
	out.Questions[index] = q.Clone()
	return out, nil
}

// AddOption appends an empty option to one question's option list.
func AddOption(d model.CompositeContentDraft, questionIndex int) (model.CompositeContentDraft, error) {
	if !d.Phase.Editable() {
		return d, ErrNotEditable
	}
	if d.Kind.Shape() != model.ShapeOptions {
		return d, ErrWrongPhase
	}
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return d, ErrDraftNotFound
	}
	out := cloneDraft(d)
	out.Questions[questionIndex].Options = appendItem(out.Questions[questionIndex].Options, "")
	return out, nil
}

// RemoveOption excises one option from one question, never touching any
// other question's options. Dropping below two options is rejected.
func RemoveOption(d model.CompositeContentDraft, questionIndex, optionIndex int) (model.CompositeContentDraft, bool, error) {
	if !d.Phase.Editable() {
		return d, false, ErrNotEditable
	}
	if d.Kind.Shape() != model.ShapeOptions {
		return d, false, ErrWrongPhase
	}
	if questionIndex < 0 || questionIndex >= len(d.Questions) {
		return d, false, ErrDraftNotFound
	}
	out := cloneDraft(d)
	options, ok := removeItem(out.Questions[questionIndex].Options, optionIndex, model.MinOptions)
	if !ok {
		return d, false, nil
	}
	out.Questions[questionIndex].Options = options
	return out, true, nil
}

// BeginSubmit runs phase-2 validation and moves the draft into
// Submitting with the in-flight guard set. Failed and partially failed
// drafts may be resubmitted; a fresh run always starts from the parent
// create (the protocol is not idempotent and never resumes).
func BeginSubmit(d model.CompositeContentDraft) (model.CompositeContentDraft, *StructuralError, error) {
	if d.Submitting || d.Phase == model.PhaseSubmitting {
		return d, nil, ErrSubmitInFlight
	}
	switch d.Phase {
	case model.PhaseQuestions, model.PhasePartiallyFailed, model.PhaseFailed:
	default:
		return d, nil, ErrWrongPhase
	}
	if serr := ValidateQuestions(d); serr != nil {
		return d, serr, nil
	}
	out := cloneDraft(d)
	out.Phase = model.PhaseSubmitting
	out.Submitting = true
	return out, nil, nil
}

// FinishSubmit applies the coordinator's outcome, clearing the guard
// and landing on the terminal phase the outcome implies.
func FinishSubmit(d model.CompositeContentDraft, outcome model.SubmissionOutcome) model.CompositeContentDraft {
	out := cloneDraft(d)
	out.Phase = outcome.Phase()
	out.Submitting = false
	return out
}
