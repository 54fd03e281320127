package model

// AnswerShape selects between the two answer-payload sub-protocols
type AnswerShape string

const (
	// ShapeOptions is a variable-length list of option strings plus a
	// matching correct answer string.
	ShapeOptions AnswerShape = "options"
	// ShapeFixedChoice is four fixed lettered slots A-D.
	ShapeFixedChoice AnswerShape = "fixed_choice"
)

// FixedChoiceLetters are the valid correct answers for the fixed-choice shape
var FixedChoiceLetters = []string{"A", "B", "C", "D"}

// QuestionDraft is one question being authored under a parent resource.
// Order is explicit and persists independently of list position.
type QuestionDraft struct {
	Text        string  `json:"text" bson:"text"`
	Points      float64 `json:"points" bson:"points"`
	Order       int     `json:"order" bson:"order"`
	Explanation string  `json:"explanation,omitempty" bson:"explanation,omitempty"`

	// Option-array variant
	Options       []string `json:"options,omitempty" bson:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correctAnswer"` // option text, or "A".."D" for fixed choice

	// Fixed-choice variant
	ChoiceA string `json:"choiceA,omitempty" bson:"choiceA,omitempty"`
	ChoiceB string `json:"choiceB,omitempty" bson:"choiceB,omitempty"`
	ChoiceC string `json:"choiceC,omitempty" bson:"choiceC,omitempty"`
	ChoiceD string `json:"choiceD,omitempty" bson:"choiceD,omitempty"`
}

// DefaultPoints is assigned to newly added questions
const DefaultPoints = 1

// MinQuestions is the minimum question-list length for any draft
const MinQuestions = 1

// MinOptions is the minimum option-list length for any question
const MinOptions = 2

// NewQuestionDraft returns the default-shaped question appended by the
// list editor: empty text, default points, minimal option structure.
func NewQuestionDraft(shape AnswerShape, order int) QuestionDraft {
	q := QuestionDraft{
		Points: DefaultPoints,
		Order:  order,
	}
	if shape == ShapeOptions {
		q.Options = make([]string, MinOptions)
	}
	return q
}

// Clone returns a deep copy; option slices are never shared between
// questions so editing one question cannot affect another.
func (q QuestionDraft) Clone() QuestionDraft {
	out := q
	if q.Options != nil {
		out.Options = make([]string, len(q.Options))
		copy(out.Options, q.Options)
	}
	return out
}

// Choices returns the fixed-choice slots in letter order
func (q QuestionDraft) Choices() []string {
	return []string{q.ChoiceA, q.ChoiceB, q.ChoiceC, q.ChoiceD}
}
