package study

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

func wrongOption(q *Quiz) string {
	correct := q.questions[q.position].Definition
	for _, o := range q.Options() {
		if o != correct {
			return o
		}
	}
	return ""
}

func TestNextQuestionOptionValidity(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 12} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			vocab := makeVocab(n)
			rnd := NewSeededRandomizer(uint64(n))

			for pos := range vocab {
				for round := 0; round < 20; round++ {
					options := NextQuestion(vocab, pos, rnd, DefaultOptionCount)

					assert.Len(t, options, min(n, DefaultOptionCount))

					counts := map[string]int{}
					for _, o := range options {
						counts[o]++
					}
					assert.Equal(t, 1, counts[vocab[pos].Definition], "correct answer present exactly once")
					assert.Len(t, counts, len(options), "options are distinct")

					for o := range counts {
						found := false
						for _, v := range vocab {
							if v.Definition == o {
								found = true
							}
						}
						assert.True(t, found, "option %q comes from the deck", o)
					}
				}
			}
		})
	}
}

func TestNextQuestionSkipsDuplicateDefinitions(t *testing.T) {
	vocab := []domain.Vocabulary{
		{ID: uuid.New(), Term: "a", Definition: "same"},
		{ID: uuid.New(), Term: "b", Definition: "same"},
		{ID: uuid.New(), Term: "c", Definition: "other"},
		{ID: uuid.New(), Term: "d", Definition: "other"},
	}

	options := NextQuestion(vocab, 0, fixedRandomizer{}, DefaultOptionCount)
	assert.ElementsMatch(t, []string{"same", "other"}, options)
}

func TestNextQuestionOutOfRange(t *testing.T) {
	assert.Nil(t, NextQuestion(makeVocab(2), 2, fixedRandomizer{}, 4))
	assert.Nil(t, NextQuestion(nil, 0, fixedRandomizer{}, 4))
}

func TestNextQuestionIsShuffled(t *testing.T) {
	vocab := makeVocab(4)

	fixed := NextQuestion(vocab, 0, fixedRandomizer{}, 4)
	assert.Equal(t, vocab[0].Definition, fixed[0])

	reversed := NextQuestion(vocab, 0, reverseRandomizer{}, 4)
	assert.Equal(t, vocab[0].Definition, reversed[3])
}

func TestQuizSelectFirstOnly(t *testing.T) {
	rec := &recorder{}
	vocab := makeVocab(4)
	q := NewQuiz(vocab, append(rec.options(), WithRandomizer(fixedRandomizer{}))...)

	assert.False(t, q.Select("not an option"))
	assert.False(t, q.State().Answered)

	require.True(t, q.Select(vocab[0].Definition))
	assert.False(t, q.Select(wrongOption(q)), "later selections are ignored")

	state := q.State()
	assert.True(t, state.Answered)
	assert.True(t, state.Correct)
	assert.Equal(t, vocab[0].Definition, state.Selected)
	assert.Equal(t, []NotificationKind{NotifyCorrect}, rec.kinds())
}

func TestQuizAdvanceRequiresSelection(t *testing.T) {
	q := NewQuiz(makeVocab(3), WithRandomizer(fixedRandomizer{}))

	assert.Equal(t, AdvanceIgnored, q.Advance())
	assert.Equal(t, 0, q.State().Position)
}

func TestQuizWrongAnswerRetries(t *testing.T) {
	vocab := makeVocab(4)
	q := NewQuiz(vocab, WithRandomizer(NewSeededRandomizer(7)))

	for i := 0; i < 5; i++ {
		require.True(t, q.Select(wrongOption(q)))
		assert.False(t, q.State().Correct)
		assert.Equal(t, AdvanceRetry, q.Advance())

		state := q.State()
		assert.Equal(t, 0, state.Position)
		assert.Equal(t, 0, state.CorrectCount)
		assert.False(t, state.Answered)
		assert.Empty(t, state.Selected)
	}
}

func TestQuizCorrectnessInvariant(t *testing.T) {
	rec := &recorder{}
	vocab := makeVocab(5)
	q := NewQuiz(vocab, append(rec.options(), WithRandomizer(NewSeededRandomizer(42)))...)

	for k := 1; k <= len(vocab); k++ {
		// A wrong attempt first must not change anything.
		require.True(t, q.Select(wrongOption(q)))
		require.Equal(t, AdvanceRetry, q.Advance())
		require.Equal(t, k-1, q.State().CorrectCount)

		require.True(t, q.Select(vocab[k-1].Definition))
		result := q.Advance()

		state := q.State()
		assert.Equal(t, k, state.CorrectCount)
		if k < len(vocab) {
			assert.Equal(t, AdvanceNext, result)
			assert.Equal(t, k, state.Position)
			assert.Equal(t, vocab[k].Term, state.Term)
			assert.Contains(t, state.Options, vocab[k].Definition)
		} else {
			assert.Equal(t, AdvanceCompleted, result)
			assert.True(t, state.Completed)
		}
	}

	assert.Equal(t, 1, rec.completed())
	assert.Equal(t, AdvanceIgnored, q.Advance())
	assert.False(t, q.Select(vocab[len(vocab)-1].Definition))
}

func TestQuizSingleRecord(t *testing.T) {
	vocab := makeVocab(1)
	q := NewQuiz(vocab)

	assert.Equal(t, []string{vocab[0].Definition}, q.Options())
	require.True(t, q.Select(vocab[0].Definition))
	assert.Equal(t, AdvanceCompleted, q.Advance())
}

func TestQuizEmpty(t *testing.T) {
	q := NewQuiz(nil)

	assert.True(t, q.Empty())
	assert.Empty(t, q.Options())
	assert.False(t, q.Select("anything"))
	assert.Equal(t, AdvanceIgnored, q.Advance())
	assert.Equal(t, 0, q.State().Total)
}

func TestQuizOptionCount(t *testing.T) {
	q := NewQuiz(makeVocab(10), WithOptionCount(6))
	assert.Len(t, q.Options(), 6)
}
