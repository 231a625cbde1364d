package consult

import (
	"errors"
	"strings"
)

// ErrorPrefix leads every failure message shown to the user.
const ErrorPrefix = "エラーが発生しました: "

// EmptyQuestionWarning is what callers show instead of consulting on blank input.
const EmptyQuestionWarning = "質問内容を入力してから「相談する」ボタンを押してください。"

// ErrEmptyQuestion is returned by ValidateQuestion for blank input.
var ErrEmptyQuestion = errors.New("consult: question is empty")

// Outcome tags a Result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is either a Success carrying the model's answer or a Failure
// carrying a user-facing message. Build it with Succeeded or Failed.
type Result struct {
	outcome Outcome
	text    string
}

func Succeeded(answer string) Result { return Result{outcome: OutcomeSuccess, text: answer} }

func Failed(message string) Result { return Result{outcome: OutcomeFailure, text: message} }

func (r Result) Outcome() Outcome { return r.outcome }

func (r Result) OK() bool { return r.outcome == OutcomeSuccess }

// Answer returns the provider's reply; empty for failures.
func (r Result) Answer() string {
	if r.outcome != OutcomeSuccess {
		return ""
	}
	return r.text
}

// Message returns the failure message; empty for successes.
func (r Result) Message() string {
	if r.outcome != OutcomeFailure {
		return ""
	}
	return r.text
}

// Text returns whichever string the result carries.
func (r Result) Text() string { return r.text }

// ValidateQuestion rejects input that is empty after trimming.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}
