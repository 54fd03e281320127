package model

import "time"

// ContentKind identifies which content-kind builder a draft belongs to
type ContentKind string

const (
	KindListening ContentKind = "listening"
	KindReading   ContentKind = "reading"
	KindSpeaking  ContentKind = "speaking"
	KindWriting   ContentKind = "writing"
	KindMCQ       ContentKind = "mcq"
)

// Phase is the wizard state of a draft
type Phase string

const (
	PhaseParentFields    Phase = "parent_fields"
	PhaseQuestions       Phase = "questions"
	PhaseSubmitting      Phase = "submitting"
	PhaseSucceeded       Phase = "succeeded"
	PhasePartiallyFailed Phase = "partially_failed"
	PhaseFailed          Phase = "failed"
)

// ParentFields holds the kind-specific attributes of the parent resource.
// Only the fields relevant to the draft's kind are used; the rest stay zero.
type ParentFields struct {
	Title           string         `json:"title" bson:"title"`
	Body            string         `json:"body,omitempty" bson:"body,omitempty"`               // reading passage / writing prompt text
	Description     string         `json:"description,omitempty" bson:"description,omitempty"`
	DurationSeconds int            `json:"durationSeconds,omitempty" bson:"durationSeconds,omitempty"`
	MinWords        int            `json:"minWords,omitempty" bson:"minWords,omitempty"`
	MaxWords        int            `json:"maxWords,omitempty" bson:"maxWords,omitempty"`
	Asset           *UploadedAsset `json:"asset,omitempty" bson:"asset,omitempty"`         // primary audio/video
	Thumbnail       *UploadedAsset `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"` // optional, speaking only
}

// CompositeContentDraft is one authoring session: a parent resource plus
// its ordered question list, moving through the two-phase wizard.
type CompositeContentDraft struct {
	ID        string          `json:"id" bson:"_id,omitempty"`
	AdminID   string          `json:"adminId" bson:"adminId"`
	Kind      ContentKind     `json:"kind" bson:"kind"`
	Phase     Phase           `json:"phase" bson:"phase"`
	LessonID  string          `json:"lessonId" bson:"lessonId"` // owning lesson/exam linkage
	Parent    ParentFields    `json:"parent" bson:"parent"`
	Questions []QuestionDraft `json:"questions" bson:"questions"`
	// Submitting guards against re-invoking submit while a run is in flight.
	// Cooperative only; it is not a server-side idempotency key.
	Submitting bool      `json:"submitting" bson:"submitting"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Skill is the backend path segment for this kind
func (k ContentKind) Skill() string {
	switch k {
	case KindListening:
		return "listening"
	case KindReading:
		return "reading"
	case KindSpeaking:
		return "speaking"
	case KindWriting:
		return "writing"
	case KindMCQ:
		return "practice"
	}
	return string(k)
}

// AssetPath is the backend collection segment for the parent resource
func (k ContentKind) AssetPath() string {
	switch k {
	case KindListening:
		return "audios"
	case KindReading:
		return "passages"
	case KindSpeaking:
		return "videos"
	case KindWriting:
		return "prompts"
	case KindMCQ:
		return "quizzes"
	}
	return string(k)
}

// ParentKey is the JSON key wrapping the created parent in the backend response
func (k ContentKind) ParentKey() string {
	switch k {
	case KindListening:
		return "audio"
	case KindReading:
		return "passage"
	case KindSpeaking:
		return "video"
	case KindWriting:
		return "prompt"
	case KindMCQ:
		return "quiz"
	}
	return string(k)
}

// PrimaryAssetKind is the required upload kind for asset-bearing kinds.
// Empty for kinds whose parent is plain text.
func (k ContentKind) PrimaryAssetKind() AssetKind {
	switch k {
	case KindListening:
		return AssetAudio
	case KindSpeaking:
		return AssetVideo
	}
	return ""
}

// Shape is the answer shape used by this kind's questions
func (k ContentKind) Shape() AnswerShape {
	if k == KindMCQ {
		return ShapeFixedChoice
	}
	return ShapeOptions
}

// Valid reports whether k is a known content kind
func (k ContentKind) Valid() bool {
	switch k {
	case KindListening, KindReading, KindSpeaking, KindWriting, KindMCQ:
		return true
	}
	return false
}

// Editable reports whether the draft accepts field and list edits.
// Failed submissions leave the draft editable for correction.
func (p Phase) Editable() bool {
	return p != PhaseSubmitting && p != PhaseSucceeded
}
