package service

import (
	"context"
	"fmt"
	"sync"

	"examforge/internal/model"
)

// In-memory stand-ins for the Redis cache and Mongo archive so service
// tests run without infrastructure.

type memDraftCache struct {
	mu     sync.Mutex
	drafts map[string]model.CompositeContentDraft
}

func newMemDraftCache() *memDraftCache {
	return &memDraftCache{drafts: make(map[string]model.CompositeContentDraft)}
}

func (c *memDraftCache) Set(ctx context.Context, draft *model.CompositeContentDraft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[draft.ID] = *draft
	return nil
}

func (c *memDraftCache) Get(ctx context.Context, id string) (*model.CompositeContentDraft, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[id]
	if !ok {
		return nil, nil
	}
	out := d
	return &out, nil
}

func (c *memDraftCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, id)
	return nil
}

type memRecordRepo struct {
	mu      sync.Mutex
	records []*model.SubmissionRecord
}

func (r *memRecordRepo) Insert(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == "" {
		record.ID = fmt.Sprintf("rec_%d", len(r.records)+1)
	}
	stored := *record
	r.records = append(r.records, &stored)
	return record.ID, nil
}

func (r *memRecordRepo) LatestByDraftID(ctx context.Context, draftID string) (*model.SubmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].DraftID == draftID {
			out := *r.records[i]
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memRecordRepo) ListByAdminID(ctx context.Context, adminID string) ([]*model.SubmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SubmissionRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].AdminID == adminID {
			rec := *r.records[i]
			out = append(out, &rec)
		}
	}
	return out, nil
}

type capturedNote struct {
	draftID string
	note    model.Notification
}

type memNotifier struct {
	mu    sync.Mutex
	notes []capturedNote
}

func (n *memNotifier) NotifyDraft(draftID string, note model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, capturedNote{draftID: draftID, note: note})
}

func (n *memNotifier) byCode(code string) []capturedNote {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []capturedNote
	for _, c := range n.notes {
		if c.note.Code == code {
			out = append(out, c)
		}
	}
	return out
}

// questionsPhaseDraft builds a listening draft ready for submission
// with two valid option-array questions.
func questionsPhaseDraft() model.CompositeContentDraft {
	d := NewDraft("admin_test", model.KindListening, "lesson_1")
	d.Parent.Title = "City sounds"
	d.Parent.DurationSeconds = 90
	d.Parent.Asset = &model.UploadedAsset{
		URL:             "https://media.example.com/city.mp3",
		Kind:            model.AssetAudio,
		DurationSeconds: 90,
	}
	d.Phase = model.PhaseQuestions
	d.Questions = []model.QuestionDraft{
		{
			Text:          "What is the capital of France?",
			Points:        2,
			Order:         1,
			Options:       []string{"Paris", "London", "Rome"},
			CorrectAnswer: "Paris",
		},
		{
			Text:          "Which city is mentioned last?",
			Points:        1,
			Order:         2,
			Options:       []string{"Rome", "Madrid"},
			CorrectAnswer: "Rome",
		},
	}
	return d
}
