package study

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// fixedRandomizer never reorders anything.
type fixedRandomizer struct{}

func (fixedRandomizer) IntN(int) int                { return 0 }
func (fixedRandomizer) Shuffle(int, func(i, j int)) {}

// reverseRandomizer reverses every shuffled slice.
type reverseRandomizer struct{}

func (reverseRandomizer) IntN(n int) int { return n - 1 }
func (reverseRandomizer) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func makeVocab(n int) []domain.Vocabulary {
	out := make([]domain.Vocabulary, n)
	for i := range out {
		out[i] = domain.Vocabulary{
			ID:         uuid.New(),
			Term:       fmt.Sprintf("term-%d", i),
			Definition: fmt.Sprintf("definition-%d", i),
			Position:   i,
		}
	}
	return out
}

type recorder struct {
	mu            sync.Mutex
	notifications []Notification
	completions   int
}

func (r *recorder) notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *recorder) complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions++
}

func (r *recorder) kinds() []NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NotificationKind, len(r.notifications))
	for i, n := range r.notifications {
		out[i] = n.Kind
	}
	return out
}

func (r *recorder) completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completions
}

func (r *recorder) options() []Option {
	return []Option{WithNotifier(r.notify), WithCompletion(r.complete)}
}
