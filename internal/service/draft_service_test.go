package service

import (
	"context"
	"testing"

	"examforge/internal/model"
)

func newDraftFixture() (*DraftService, *memDraftCache, *memNotifier) {
	drafts := newMemDraftCache()
	notifier := &memNotifier{}
	return NewDraftService(drafts, notifier), drafts, notifier
}

func TestDraftServiceCreate(t *testing.T) {
	svc, drafts, _ := newDraftFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, "admin_1", model.KindReading, "lesson_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == "" || d.Phase != model.PhaseParentFields {
		t.Fatalf("unexpected draft: %+v", d)
	}

	stored, _ := drafts.Get(ctx, d.ID)
	if stored == nil {
		t.Fatal("draft not stored in the session cache")
	}

	if _, err := svc.Create(ctx, "admin_1", "karaoke", ""); err == nil {
		t.Fatal("unknown content kind must be rejected")
	}
}

func TestDraftServiceGetMissing(t *testing.T) {
	svc, _, _ := newDraftFixture()
	if _, err := svc.Get(context.Background(), "missing"); err != ErrDraftNotFound {
		t.Fatalf("expected ErrDraftNotFound, got %v", err)
	}
}

func TestDraftServiceAdvanceNotifiesOnFailure(t *testing.T) {
	svc, drafts, notifier := newDraftFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, "admin_1", model.KindReading, "")
	if err != nil {
		t.Fatal(err)
	}

	got, fields, err := svc.Advance(ctx, d.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) == 0 {
		t.Fatal("expected field errors")
	}
	if got.Phase != model.PhaseParentFields {
		t.Fatalf("draft advanced despite errors: %s", got.Phase)
	}
	if notes := notifier.byCode(model.NoteValidationFailed); len(notes) != 1 {
		t.Fatalf("expected one validation notification, got %d", len(notes))
	}

	// the stored draft also stayed put
	stored, _ := drafts.Get(ctx, d.ID)
	if stored.Phase != model.PhaseParentFields {
		t.Fatalf("stored draft advanced despite errors: %s", stored.Phase)
	}
}

func TestDraftServiceRemoveLastQuestionWarns(t *testing.T) {
	svc, drafts, notifier := newDraftFixture()
	ctx := context.Background()

	d := questionsPhaseDraft()
	d.Questions = d.Questions[:1]
	drafts.Set(ctx, &d)

	got, err := svc.RemoveQuestion(ctx, d.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("question removed past the minimum: %d left", len(got.Questions))
	}

	notes := notifier.byCode(model.NoteListMinReached)
	if len(notes) != 1 {
		t.Fatalf("expected one minimum-reached notification, got %d", len(notes))
	}
	if notes[0].note.Level != model.LevelWarning {
		t.Fatalf("expected a warning, got %s", notes[0].note.Level)
	}
	if notes[0].draftID != d.ID {
		t.Fatalf("notification addressed to wrong draft: %s", notes[0].draftID)
	}
}

func TestDraftServiceRemoveOptionWarnsAtFloor(t *testing.T) {
	svc, drafts, notifier := newDraftFixture()
	ctx := context.Background()

	d := questionsPhaseDraft()
	drafts.Set(ctx, &d)

	// question 1 holds exactly two options
	got, err := svc.RemoveOption(ctx, d.ID, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Questions[1].Options) != model.MinOptions {
		t.Fatalf("option removed past the minimum: %v", got.Questions[1].Options)
	}
	if notes := notifier.byCode(model.NoteListMinReached); len(notes) != 1 {
		t.Fatalf("expected one minimum-reached notification, got %d", len(notes))
	}
}

func TestDraftServiceQuestionListRoundTrip(t *testing.T) {
	svc, drafts, _ := newDraftFixture()
	ctx := context.Background()

	d := questionsPhaseDraft()
	drafts.Set(ctx, &d)

	got, err := svc.AddQuestion(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got.Questions))
	}

	q := got.Questions[2]
	q.Text = "New question"
	q.Options = []string{"Yes", "No"}
	q.CorrectAnswer = "Yes"
	if _, err := svc.UpdateQuestion(ctx, d.ID, 2, q); err != nil {
		t.Fatal(err)
	}

	got, err = svc.RemoveQuestion(ctx, d.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Questions) != 2 || got.Questions[1].Text != "New question" {
		t.Fatalf("unexpected question list: %+v", got.Questions)
	}
}
