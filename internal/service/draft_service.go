package service

import (
	"context"
	"fmt"

	"examforge/internal/cache"
	"examforge/internal/model"
)

// DraftService drives the authoring wizard. Every operation loads the
// session from the cache, applies a pure transition and stores the new
// draft value; rejections surface as Notification events.
type DraftService struct {
	drafts   cache.DraftCache
	notifier Broadcaster
}

// NewDraftService creates a new draft service
func NewDraftService(drafts cache.DraftCache, notifier Broadcaster) *DraftService {
	return &DraftService{
		drafts:   drafts,
		notifier: notifier,
	}
}

// Create starts a new authoring session of the given kind
func (s *DraftService) Create(ctx context.Context, adminID string, kind model.ContentKind, lessonID string) (*model.CompositeContentDraft, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown content kind %q", kind)
	}
	draft := NewDraft(adminID, kind, lessonID)
	if err := s.drafts.Set(ctx, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Get returns the active draft for a session
func (s *DraftService) Get(ctx context.Context, id string) (*model.CompositeContentDraft, error) {
	return s.load(ctx, id)
}

// SetParent replaces the draft's editable parent fields
func (s *DraftService) SetParent(ctx context.Context, id string, fields model.ParentFields) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := SetParent(*draft, fields)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, updated)
}

// Advance gates the ParentFields → Questions transition on phase-1
// validation. The field error map is non-empty exactly when the draft
// stayed put.
func (s *DraftService) Advance(ctx context.Context, id string) (*model.CompositeContentDraft, map[string]string, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	updated, fieldErrs, err := Advance(*draft)
	if err != nil {
		return nil, nil, err
	}
	if len(fieldErrs) > 0 {
		s.notifier.NotifyDraft(id, model.Notification{
			Level:   model.LevelError,
			Code:    model.NoteValidationFailed,
			Message: fmt.Sprintf("%d field(s) need attention", len(fieldErrs)),
		})
		return draft, fieldErrs, nil
	}
	stored, err := s.store(ctx, updated)
	return stored, nil, err
}

// Retreat navigates Questions → ParentFields, keeping the question list
func (s *DraftService) Retreat(ctx context.Context, id string) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := Retreat(*draft)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, updated)
}

// AddQuestion appends a default-shaped question
func (s *DraftService) AddQuestion(ctx context.Context, id string) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := AddQuestion(*draft)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, updated)
}

// RemoveQuestion removes the question at index; removing the last
// question is rejected with a warning notification.
func (s *DraftService) RemoveQuestion(ctx context.Context, id string, index int) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, ok, err := RemoveQuestion(*draft, index)
	if err != nil {
		return nil, err
	}
	if !ok {
		idx := index
		s.notifier.NotifyDraft(id, model.Notification{
			Level:         model.LevelWarning,
			Code:          model.NoteListMinReached,
			Message:       "a draft needs at least one question",
			QuestionIndex: &idx,
		})
		return draft, nil
	}
	return s.store(ctx, updated)
}

// UpdateQuestion replaces the question at index
func (s *DraftService) UpdateQuestion(ctx context.Context, id string, index int, q model.QuestionDraft) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := UpdateQuestion(*draft, index, q)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, updated)
}

// AddOption appends an empty option to one question
func (s *DraftService) AddOption(ctx context.Context, id string, questionIndex int) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := AddOption(*draft, questionIndex)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, updated)
}

// RemoveOption removes one option from one question; dropping below two
// options is rejected with a warning notification.
func (s *DraftService) RemoveOption(ctx context.Context, id string, questionIndex, optionIndex int) (*model.CompositeContentDraft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, ok, err := RemoveOption(*draft, questionIndex, optionIndex)
	if err != nil {
		return nil, err
	}
	if !ok {
		idx := questionIndex
		s.notifier.NotifyDraft(id, model.Notification{
			Level:         model.LevelWarning,
			Code:          model.NoteListMinReached,
			Message:       "a question needs at least two options",
			QuestionIndex: &idx,
		})
		return draft, nil
	}
	return s.store(ctx, updated)
}

func (s *DraftService) load(ctx context.Context, id string) (*model.CompositeContentDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *DraftService) store(ctx context.Context, draft model.CompositeContentDraft) (*model.CompositeContentDraft, error) {
	if err := s.drafts.Set(ctx, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
