package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"examforge/internal/cache"
	"examforge/internal/model"
	"examforge/internal/repository"
)

// SubmissionService runs the sequential, dependent write protocol: one
// parent create, then one child create per question in list order, each
// awaited before the next. Children require the parent's ID, so nothing
// here is ever parallel.
type SubmissionService struct {
	backend  *BackendClient
	drafts   cache.DraftCache
	records  repository.SubmissionRecordRepo
	notifier Broadcaster
}

// NewSubmissionService creates a new submission coordinator
func NewSubmissionService(backend *BackendClient, drafts cache.DraftCache, records repository.SubmissionRecordRepo, notifier Broadcaster) *SubmissionService {
	return &SubmissionService{
		backend:  backend,
		drafts:   drafts,
		records:  records,
		notifier: notifier,
	}
}

// Submit gates on phase-2 validation, runs the protocol and applies the
// outcome. The bearer token is passed through to every backend call.
// Succeeded drafts are discarded; failed ones stay editable in the
// cache for correction and a fresh (non-resuming) resubmission.
func (s *SubmissionService) Submit(ctx context.Context, token, draftID string) (*model.SubmissionOutcome, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}

	submitting, serr, err := BeginSubmit(*draft)
	if err != nil {
		return nil, err
	}
	if serr != nil {
		idx := serr.QuestionIndex
		s.notifier.NotifyDraft(draftID, model.Notification{
			Level:         model.LevelError,
			Code:          model.NoteValidationFailed,
			Message:       serr.Reason,
			QuestionIndex: &idx,
		})
		return nil, serr
	}
	if err := s.drafts.Set(ctx, &submitting); err != nil {
		return nil, err
	}

	outcome := s.run(ctx, token, submitting)
	finished := FinishSubmit(submitting, outcome)

	record := &model.SubmissionRecord{
		DraftID:     draftID,
		AdminID:     finished.AdminID,
		Kind:        finished.Kind,
		Outcome:     outcome,
		Draft:       finished,
		SubmittedAt: time.Now(),
	}
	if _, err := s.records.Insert(ctx, record); err != nil {
		log.Printf("[Submit] Warning: failed to archive outcome for draft %s: %v", draftID, err)
	}

	if outcome.Phase() == model.PhaseSucceeded {
		if err := s.drafts.Delete(ctx, draftID); err != nil {
			log.Printf("[Submit] Warning: failed to discard draft %s: %v", draftID, err)
		}
	} else {
		if err := s.drafts.Set(ctx, &finished); err != nil {
			log.Printf("[Submit] Warning: failed to retain draft %s: %v", draftID, err)
		}
	}

	s.notifier.NotifyDraft(draftID, model.Notification{
		Level:   levelFor(outcome),
		Code:    model.NoteSubmissionComplete,
		Message: string(outcome.Phase()),
	})
	return &outcome, nil
}

// GetOutcome returns the latest archived submission record for a draft
func (s *SubmissionService) GetOutcome(ctx context.Context, draftID string) (*model.SubmissionRecord, error) {
	return s.records.LatestByDraftID(ctx, draftID)
}

// ListRecords returns an admin's archived submissions, newest first
func (s *SubmissionService) ListRecords(ctx context.Context, adminID string) ([]*model.SubmissionRecord, error) {
	return s.records.ListByAdminID(ctx, adminID)
}

// run executes the protocol. A parent failure aborts with nothing
// persisted; a child failure at index i leaves the parent and children
// < i persisted with no compensating rollback.
func (s *SubmissionService) run(ctx context.Context, token string, d model.CompositeContentDraft) model.SubmissionOutcome {
	log.Printf("[Submit] Creating parent: kind=%s title=%q questions=%d", d.Kind, d.Parent.Title, len(d.Questions))

	parentID, err := s.backend.CreateParent(ctx, token, d.Kind, buildParentRequest(d))
	if err != nil {
		perr := &ParentCreateError{Err: err}
		log.Printf("[Submit] ERROR: %v", perr)
		return model.SubmissionOutcome{
			CreatedQuestionIDs: []string{},
			Error:              perr.Error(),
		}
	}

	outcome := model.SubmissionOutcome{
		ParentID:           parentID,
		CreatedQuestionIDs: []string{},
	}
	s.progress(d.ID, fmt.Sprintf("parent created (%s)", parentID))

	shape := d.Kind.Shape()
	for i, q := range d.Questions {
		// each create completes before the next one starts
		questionID, err := s.backend.CreateQuestion(ctx, token, d.Kind, parentID, buildQuestionRequest(shape, q))
		if err != nil {
			idx := i
			cerr := &ChildCreateError{Index: i, Err: err}
			log.Printf("[Submit] ERROR: %v (stopping; %d of %d created)", cerr, i, len(d.Questions))
			outcome.FirstFailureIndex = &idx
			outcome.Error = cerr.Error()
			return outcome
		}
		outcome.CreatedQuestionIDs = append(outcome.CreatedQuestionIDs, questionID)
		s.progress(d.ID, fmt.Sprintf("question %d/%d created", i+1, len(d.Questions)))
	}

	log.Printf("[Submit] Complete: parent=%s questions=%d", parentID, len(outcome.CreatedQuestionIDs))
	return outcome
}

func (s *SubmissionService) progress(draftID, message string) {
	s.notifier.NotifyDraft(draftID, model.Notification{
		Level:   model.LevelInfo,
		Code:    model.NoteSubmissionProgress,
		Message: message,
	})
}

func levelFor(outcome model.SubmissionOutcome) model.NotificationLevel {
	if outcome.Phase() == model.PhaseSucceeded {
		return model.LevelInfo
	}
	return model.LevelError
}

// buildParentRequest maps the draft's parent fields and attached assets
// onto the kind-specific wire payload.
func buildParentRequest(d model.CompositeContentDraft) ParentCreateRequest {
	req := ParentCreateRequest{
		Title:       d.Parent.Title,
		Description: d.Parent.Description,
		LessonID:    d.LessonID,
	}

	switch d.Kind {
	case model.KindListening:
		if d.Parent.Asset != nil {
			req.AudioURL = d.Parent.Asset.URL
		}
		req.DurationSeconds = d.Parent.DurationSeconds
	case model.KindReading:
		req.PassageText = d.Parent.Body
	case model.KindSpeaking:
		if d.Parent.Asset != nil {
			req.VideoURL = d.Parent.Asset.URL
		}
		if d.Parent.Thumbnail != nil {
			req.ThumbnailURL = d.Parent.Thumbnail.URL
		}
	case model.KindWriting:
		req.PromptText = d.Parent.Body
		req.MinWords = d.Parent.MinWords
		req.MaxWords = d.Parent.MaxWords
	}

	return req
}

// buildQuestionRequest maps one question onto its answer-shape
// sub-protocol. The order value comes from the draft, not from the
// creation sequence.
func buildQuestionRequest(shape model.AnswerShape, q model.QuestionDraft) QuestionCreateRequest {
	req := QuestionCreateRequest{
		QuestionText:  q.Text,
		Points:        q.Points,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}

	switch shape {
	case model.ShapeOptions:
		req.Options = append([]string(nil), q.Options...)
	case model.ShapeFixedChoice:
		req.ChoiceA = q.ChoiceA
		req.ChoiceB = q.ChoiceB
		req.ChoiceC = q.ChoiceC
		req.ChoiceD = q.ChoiceD
		req.Order = q.Order
	}

	return req
}
