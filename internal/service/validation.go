package service

import (
	"strings"

	"examforge/internal/model"
)

// ValidateParent runs phase-1 validation for the draft's kind. The
// returned map is field → user-facing message; empty means the draft
// may advance to the questions phase.
func ValidateParent(d model.CompositeContentDraft) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Parent.Title) == "" {
		errs["title"] = "required"
	}

	switch d.Kind {
	case model.KindListening:
		if d.Parent.Asset == nil {
			errs["asset"] = "an uploaded audio file is required"
		}
		if d.Parent.DurationSeconds <= 0 {
			errs["durationSeconds"] = "must be positive"
		}
	case model.KindReading:
		if strings.TrimSpace(d.Parent.Body) == "" {
			errs["body"] = "required"
		}
	case model.KindSpeaking:
		if d.Parent.Asset == nil {
			errs["asset"] = "an uploaded video is required"
		}
	case model.KindWriting:
		if strings.TrimSpace(d.Parent.Body) == "" {
			errs["body"] = "required"
		}
		switch {
		case d.Parent.MinWords <= 0:
			errs["minWords"] = "must be positive"
		case d.Parent.MaxWords <= 0:
			errs["maxWords"] = "must be positive"
		case d.Parent.MinWords >= d.Parent.MaxWords:
			errs["minWords"] = "must be less than maxWords"
		}
	}

	return errs
}

// ValidateQuestions runs phase-2 validation in list order and reports
// the first offending question. nil means every question passes; the
// draft is never submitted while any question is invalid.
func ValidateQuestions(d model.CompositeContentDraft) *StructuralError {
	shape := d.Kind.Shape()
	for i, q := range d.Questions {
		if reason := validateQuestion(shape, q); reason != "" {
			return &StructuralError{QuestionIndex: i, Reason: reason}
		}
	}
	return nil
}

func validateQuestion(shape model.AnswerShape, q model.QuestionDraft) string {
	if strings.TrimSpace(q.Text) == "" {
		return "question text is required"
	}
	if q.Points <= 0 {
		return "points must be positive"
	}

	switch shape {
	case model.ShapeOptions:
		if countNonEmpty(q.Options) < model.MinOptions {
			return "at least two non-empty options are required"
		}
		correct := strings.TrimSpace(q.CorrectAnswer)
		if correct == "" {
			return "correct answer is required"
		}
		// Trimmed, case-sensitive match against a non-empty option
		if !containsTrimmed(q.Options, correct) {
			return "correct answer must match one of the options"
		}
	case model.ShapeFixedChoice:
		if countNonEmpty(q.Choices()) < model.MinOptions {
			return "at least two non-empty choices are required"
		}
		letter := strings.TrimSpace(q.CorrectAnswer)
		if letter == "" {
			return "correct answer is required"
		}
		idx := letterIndex(letter)
		if idx < 0 {
			return "correct answer must be one of A, B, C or D"
		}
		if strings.TrimSpace(q.Choices()[idx]) == "" {
			return "correct answer points at an empty choice"
		}
	}

	return ""
}

func countNonEmpty(options []string) int {
	n := 0
	for _, o := range options {
		if strings.TrimSpace(o) != "" {
			n++
		}
	}
	return n
}

func containsTrimmed(options []string, target string) bool {
	for _, o := range options {
		t := strings.TrimSpace(o)
		if t != "" && t == target {
			return true
		}
	}
	return false
}

func letterIndex(letter string) int {
	for i, l := range model.FixedChoiceLetters {
		if l == letter {
			return i
		}
	}
	return -1
}
