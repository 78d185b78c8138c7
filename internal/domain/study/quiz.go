package study

import (
	"slices"

	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// AdvanceResult reports what Quiz.Advance did.
type AdvanceResult int

// Advance results.
const (
	// AdvanceIgnored means no answer was selected or the quiz is over.
	AdvanceIgnored AdvanceResult = iota
	// AdvanceRetry means the answer was wrong and the question stays.
	AdvanceRetry
	// AdvanceNext means the answer was right and a new question is up.
	AdvanceNext
	// AdvanceCompleted means the last question was answered correctly.
	AdvanceCompleted
)

// QuizState is a snapshot of a quiz.
type QuizState struct {
	Position     int
	Total        int
	Term         string
	Example      string
	Options      []string
	Selected     string
	Answered     bool
	Correct      bool
	CorrectCount int
	Completed    bool
}

// Quiz asks for the definition of every term in order. A wrong answer must be
// retried until it is right, so CorrectCount always equals the number of
// questions passed.
//
// Quiz is not safe for concurrent use.
type Quiz struct {
	questions []domain.Vocabulary
	opts      options

	position     int
	options      []string
	selected     string
	answered     bool
	correctCount int
	completed    bool
}

// NewQuiz creates a quiz over a copy of vocab and prepares the first
// question.
func NewQuiz(vocab []domain.Vocabulary, opts ...Option) *Quiz {
	q := &Quiz{
		questions: slices.Clone(vocab),
		opts:      newOptions(opts),
	}
	if len(q.questions) > 0 {
		q.options = NextQuestion(q.questions, 0, q.opts.rnd, q.opts.optionCount)
	}
	return q
}

// NextQuestion returns the shuffled answer options for order[position]: the
// correct definition plus up to optionCount-1 distinct distractor definitions
// sampled from the other records. With few records the set is smaller, down
// to the correct answer alone.
func NextQuestion(order []domain.Vocabulary, position int, rnd Randomizer, optionCount int) []string {
	if position < 0 || position >= len(order) {
		return nil
	}
	if optionCount < 1 {
		optionCount = 1
	}

	correct := order[position].Definition

	candidates := make([]string, 0, len(order)-1)
	for i, v := range order {
		if i != position {
			candidates = append(candidates, v.Definition)
		}
	}
	shuffle(rnd, candidates)

	options := make([]string, 1, optionCount)
	options[0] = correct
	seen := map[string]bool{correct: true}
	for _, c := range candidates {
		if len(options) == optionCount {
			break
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		options = append(options, c)
	}

	shuffle(rnd, options)
	return options
}

// Empty reports whether the quiz has no questions.
func (q *Quiz) Empty() bool {
	return len(q.questions) == 0
}

// Options returns a copy of the current answer options.
func (q *Quiz) Options() []string {
	return slices.Clone(q.options)
}

// Select records the learner's answer. Only the first selection per question
// counts and only a currently offered option is accepted.
func (q *Quiz) Select(option string) bool {
	if q.Empty() || q.completed || q.answered {
		return false
	}
	if !slices.Contains(q.options, option) {
		return false
	}

	q.selected = option
	q.answered = true
	if q.isCorrect() {
		q.opts.emit(NotifyCorrect, "Correct answer!")
	}
	return true
}

// Advance moves past an answered question. A wrong answer clears the
// selection and keeps the question.
func (q *Quiz) Advance() AdvanceResult {
	if !q.answered || q.completed {
		return AdvanceIgnored
	}

	correct := q.isCorrect()
	q.selected = ""
	q.answered = false

	if !correct {
		return AdvanceRetry
	}

	q.correctCount++
	if q.position == len(q.questions)-1 {
		q.completed = true
		q.opts.emit(NotifyCompleted, "Quiz complete!")
		q.opts.complete()
		return AdvanceCompleted
	}

	q.position++
	q.options = NextQuestion(q.questions, q.position, q.opts.rnd, q.opts.optionCount)
	return AdvanceNext
}

// State returns a snapshot of the quiz.
func (q *Quiz) State() QuizState {
	state := QuizState{
		Position:     q.position,
		Total:        len(q.questions),
		Options:      q.Options(),
		Selected:     q.selected,
		Answered:     q.answered,
		Correct:      q.answered && q.isCorrect(),
		CorrectCount: q.correctCount,
		Completed:    q.completed,
	}
	if !q.Empty() {
		state.Term = q.questions[q.position].Term
		state.Example = q.questions[q.position].Example
	}
	return state
}

func (q *Quiz) isCorrect() bool {
	return q.selected == q.questions[q.position].Definition
}
