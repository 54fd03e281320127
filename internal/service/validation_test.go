package service

import (
	"testing"

	"examforge/internal/model"
)

func parentDraft(kind model.ContentKind, mutate func(*model.CompositeContentDraft)) model.CompositeContentDraft {
	d := NewDraft("admin_1", kind, "lesson_1")
	if mutate != nil {
		mutate(&d)
	}
	return d
}

func TestValidateParentListening(t *testing.T) {
	d := parentDraft(model.KindListening, nil)
	errs := ValidateParent(d)
	for _, field := range []string{"title", "asset", "durationSeconds"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}

	d = parentDraft(model.KindListening, func(d *model.CompositeContentDraft) {
		d.Parent.Title = "Morning news"
		d.Parent.DurationSeconds = 60
		d.Parent.Asset = &model.UploadedAsset{URL: "x", Kind: model.AssetAudio}
	})
	if errs := ValidateParent(d); len(errs) != 0 {
		t.Fatalf("expected valid draft, got %v", errs)
	}
}

func TestValidateParentReading(t *testing.T) {
	d := parentDraft(model.KindReading, func(d *model.CompositeContentDraft) {
		d.Parent.Title = "A title"
		d.Parent.Body = "   " // whitespace only
	})
	errs := ValidateParent(d)
	if _, ok := errs["body"]; !ok {
		t.Fatalf("expected body error, got %v", errs)
	}
}

func TestValidateParentSpeaking(t *testing.T) {
	d := parentDraft(model.KindSpeaking, func(d *model.CompositeContentDraft) {
		d.Parent.Title = "Interview practice"
	})
	errs := ValidateParent(d)
	if _, ok := errs["asset"]; !ok {
		t.Fatalf("expected asset error, got %v", errs)
	}

	d.Parent.Asset = &model.UploadedAsset{URL: "x", Kind: model.AssetVideo}
	if errs := ValidateParent(d); len(errs) != 0 {
		t.Fatalf("expected valid draft, got %v", errs)
	}
}

func TestValidateParentWritingWordBounds(t *testing.T) {
	base := func(min, max int) model.CompositeContentDraft {
		return parentDraft(model.KindWriting, func(d *model.CompositeContentDraft) {
			d.Parent.Title = "Essay"
			d.Parent.Body = "Describe your hometown."
			d.Parent.MinWords = min
			d.Parent.MaxWords = max
		})
	}

	if errs := ValidateParent(base(0, 300)); errs["minWords"] == "" {
		t.Fatalf("expected minWords error, got %v", errs)
	}
	if errs := ValidateParent(base(100, 0)); errs["maxWords"] == "" {
		t.Fatalf("expected maxWords error, got %v", errs)
	}
	if errs := ValidateParent(base(300, 100)); errs["minWords"] == "" {
		t.Fatalf("expected minWords < maxWords error, got %v", errs)
	}
	if errs := ValidateParent(base(100, 300)); len(errs) != 0 {
		t.Fatalf("expected valid draft, got %v", errs)
	}
}

func TestValidateQuestionsReportsFirstFailure(t *testing.T) {
	d := questionsPhaseDraft()
	d.Questions[1].Text = ""

	serr := ValidateQuestions(d)
	if serr == nil {
		t.Fatal("expected a structural error")
	}
	if serr.QuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d", serr.QuestionIndex)
	}
}

func TestValidateQuestionsCorrectAnswerMatching(t *testing.T) {
	cases := []struct {
		name    string
		options []string
		correct string
		valid   bool
	}{
		{"exact match", []string{"Paris", "London", "Rome"}, "Paris", true},
		{"option compared trimmed", []string{"  Paris  ", "London"}, "Paris", true},
		{"no match", []string{"Paris", "London"}, "Berlin", false},
		{"case sensitive", []string{"Paris", "London"}, "paris", false},
		{"empty correct", []string{"Paris", "London"}, "", false},
		{"blank options do not count", []string{"Paris", "", "  "}, "Paris", false},
	}

	for _, c := range cases {
		d := questionsPhaseDraft()
		d.Questions = d.Questions[:1]
		d.Questions[0].Options = c.options
		d.Questions[0].CorrectAnswer = c.correct

		serr := ValidateQuestions(d)
		if c.valid && serr != nil {
			t.Fatalf("%s: expected valid, got %v", c.name, serr)
		}
		if !c.valid && serr == nil {
			t.Fatalf("%s: expected a structural error", c.name)
		}
	}
}

func TestValidateQuestionsFixedChoice(t *testing.T) {
	base := func() model.CompositeContentDraft {
		d := NewDraft("admin_1", model.KindMCQ, "")
		d.Phase = model.PhaseQuestions
		d.Questions = []model.QuestionDraft{{
			Text:          "Pick one",
			Points:        1,
			Order:         1,
			ChoiceA:       "Alpha",
			ChoiceB:       "Beta",
			CorrectAnswer: "A",
		}}
		return d
	}

	if serr := ValidateQuestions(base()); serr != nil {
		t.Fatalf("expected valid, got %v", serr)
	}

	d := base()
	d.Questions[0].CorrectAnswer = "E"
	if serr := ValidateQuestions(d); serr == nil {
		t.Fatal("letter outside A-D must be rejected")
	}

	d = base()
	d.Questions[0].CorrectAnswer = "C"
	if serr := ValidateQuestions(d); serr == nil {
		t.Fatal("correct answer pointing at an empty choice must be rejected")
	}

	d = base()
	d.Questions[0].ChoiceB = ""
	if serr := ValidateQuestions(d); serr == nil {
		t.Fatal("fewer than two non-empty choices must be rejected")
	}
}

func TestValidateQuestionsPoints(t *testing.T) {
	d := questionsPhaseDraft()
	d.Questions[0].Points = 0
	if serr := ValidateQuestions(d); serr == nil || serr.QuestionIndex != 0 {
		t.Fatalf("expected structural error at index 0, got %v", serr)
	}
}
