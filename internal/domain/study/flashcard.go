package study

import (
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// Direction of a flashcard transition.
type Direction int

// Transition directions.
const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Gesture is the action a swipe resolved to.
type Gesture int

// Gestures.
const (
	GestureFlip Gesture = iota
	GestureNext
	GesturePrevious
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNext:
		return "next"
	case GesturePrevious:
		return "previous"
	default:
		return "flip"
	}
}

// NavigationResult reports what a Next or Previous request did.
type NavigationResult int

// Navigation results.
const (
	// NavigationIgnored means the request was not valid in the current state.
	NavigationIgnored NavigationResult = iota
	// NavigationScheduled means a transition is pending until Commit.
	NavigationScheduled
	// NavigationCompleted means Next was requested on the last card.
	NavigationCompleted
)

// FlashcardState is a snapshot of a navigator.
type FlashcardState struct {
	Position  int
	Total     int
	Revealed  bool
	Pending   Direction
	Completed bool
	// Card is nil when the deck is empty.
	Card *domain.Vocabulary
}

// Flashcards pages through a deck one card at a time.
//
// Next and Previous only request a transition. The position change, together
// with hiding the card's back, is applied by Commit, which the navigator
// schedules on its clock after the transition delay. While a transition is
// pending further Next and Previous requests are ignored.
//
// Flashcards is safe for concurrent use.
type Flashcards struct {
	cards []domain.Vocabulary
	opts  options

	mu         sync.Mutex
	position   int
	revealed   bool
	pending    Direction
	generation uint64
	timer      clockwork.Timer
	completed  bool
}

// NewFlashcards creates a navigator over a copy of vocab. An empty deck is a
// terminal state in which every operation is a no-op.
func NewFlashcards(vocab []domain.Vocabulary, opts ...Option) *Flashcards {
	return &Flashcards{
		cards: slices.Clone(vocab),
		opts:  newOptions(opts),
	}
}

// Empty reports whether the deck has no cards.
func (f *Flashcards) Empty() bool {
	return len(f.cards) == 0
}

// Flip toggles whether the back of the current card is shown.
func (f *Flashcards) Flip() bool {
	if f.Empty() {
		return false
	}

	f.mu.Lock()
	f.revealed = !f.revealed
	f.mu.Unlock()
	return true
}

// Next requests a move to the following card. On the last card it signals
// completion instead, once per session.
func (f *Flashcards) Next() NavigationResult {
	if f.Empty() {
		return NavigationIgnored
	}

	f.mu.Lock()
	if f.pending != DirectionNone {
		f.mu.Unlock()
		return NavigationIgnored
	}

	if f.position == len(f.cards)-1 {
		if f.completed {
			f.mu.Unlock()
			return NavigationIgnored
		}
		f.completed = true
		f.mu.Unlock()

		f.opts.emit(NotifyCompleted, "You've reviewed every card!")
		f.opts.complete()
		return NavigationCompleted
	}

	f.schedule(DirectionForward)
	f.mu.Unlock()
	return NavigationScheduled
}

// Previous requests a move to the preceding card. It is a no-op on the
// first card.
func (f *Flashcards) Previous() NavigationResult {
	if f.Empty() {
		return NavigationIgnored
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending != DirectionNone || f.position == 0 {
		return NavigationIgnored
	}

	f.schedule(DirectionBackward)
	return NavigationScheduled
}

// SwipeResult is what a swipe resolved to. Navigation is the outcome of
// the Next or Previous it triggered and is NavigationIgnored for a flip.
type SwipeResult struct {
	Gesture    Gesture
	Navigation NavigationResult
	Applied    bool
}

// Swipe maps a horizontal gesture to an action and performs it. A leftward
// displacement above the threshold goes to the next card, a rightward one to
// the previous card; anything shorter flips the card.
func (f *Flashcards) Swipe(startX, endX float64) SwipeResult {
	distance := startX - endX

	switch {
	case distance > f.opts.swipeThreshold:
		nav := f.Next()
		return SwipeResult{Gesture: GestureNext, Navigation: nav, Applied: nav != NavigationIgnored}
	case -distance > f.opts.swipeThreshold:
		nav := f.Previous()
		return SwipeResult{Gesture: GesturePrevious, Navigation: nav, Applied: nav != NavigationIgnored}
	default:
		return SwipeResult{Gesture: GestureFlip, Navigation: NavigationIgnored, Applied: f.Flip()}
	}
}

// Commit applies the pending transition immediately. It reports false when
// nothing was pending.
func (f *Flashcards) Commit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commitLocked()
}

// Stop cancels a pending transition without applying it.
func (f *Flashcards) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.pending = DirectionNone
	f.generation++
}

// State returns a snapshot of the navigator.
func (f *Flashcards) State() FlashcardState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := FlashcardState{
		Position:  f.position,
		Total:     len(f.cards),
		Revealed:  f.revealed,
		Pending:   f.pending,
		Completed: f.completed,
	}
	if !f.Empty() {
		card := f.cards[f.position]
		state.Card = &card
	}
	return state
}

// schedule must be called with f.mu held.
func (f *Flashcards) schedule(d Direction) {
	f.pending = d
	f.generation++
	gen := f.generation
	f.timer = f.opts.clock.AfterFunc(f.opts.transitionDelay, func() {
		f.commitScheduled(gen)
	})
}

func (f *Flashcards) commitScheduled(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// A manual Commit or Stop already consumed this transition.
	if gen != f.generation {
		return
	}
	f.commitLocked()
}

func (f *Flashcards) commitLocked() bool {
	switch f.pending {
	case DirectionForward:
		f.position++
	case DirectionBackward:
		f.position--
	default:
		return false
	}

	f.pending = DirectionNone
	f.revealed = false
	f.generation++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	return true
}
