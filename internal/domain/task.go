package domain

// TaskKind identifies one of the assistant tasks. The string form doubles as
// the view name in the HTTP API.
type TaskKind string

const (
	TaskTranslate      TaskKind = "translate"
	TaskCorrectGrammar TaskKind = "grammar"
	TaskDefineWord     TaskKind = "word-meaning"
)

// TaskKinds lists every task in display order.
var TaskKinds = []TaskKind{TaskTranslate, TaskCorrectGrammar, TaskDefineWord}

func (k TaskKind) String() string { return string(k) }

func (k TaskKind) IsValid() bool {
	switch k {
	case TaskTranslate, TaskCorrectGrammar, TaskDefineWord:
		return true
	}
	return false
}

// FailureMessage is the user-facing message shown when a task fails remotely.
func (k TaskKind) FailureMessage() string {
	switch k {
	case TaskTranslate:
		return "Sorry, an error occurred during translation. Please try again."
	case TaskCorrectGrammar:
		return "Sorry, an error occurred while correcting grammar. Please try again."
	case TaskDefineWord:
		return "Sorry, an error occurred while checking the word. Please try again."
	}
	return "An unexpected error occurred."
}

// Request is one user submission. It is never persisted.
type Request struct {
	Kind  TaskKind
	Input string
}

// TextResult is the payload of the translate and grammar tasks.
type TextResult struct {
	Text string `json:"text"`
}
