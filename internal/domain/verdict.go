package domain

// Verdict classifies a user answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	// VerdictNotImplemented is returned for question types that cannot be
	// auto-graded. Callers must check for it.
	VerdictNotImplemented Verdict = "not_implemented"
)

// IsGraded reports whether the verdict is a real correct/incorrect decision.
func (v Verdict) IsGraded() bool {
	return v == VerdictCorrect || v == VerdictIncorrect
}

func (v Verdict) String() string {
	return string(v)
}

// Message is the text shown to the quiz taker.
func (v Verdict) Message() string {
	switch v {
	case VerdictCorrect:
		return "Correct!"
	case VerdictIncorrect:
		return "Incorrect."
	default:
		return MsgCannotAutoGrade
	}
}
