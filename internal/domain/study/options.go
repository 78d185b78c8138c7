package study

import (
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
)

// Engine defaults.
const (
	DefaultTransitionDelay = 300 * time.Millisecond
	DefaultSwipeThreshold  = 50.0
	DefaultPairLimit       = 6
	DefaultOptionCount     = 4
)

// Randomizer is the source of shuffles and samples used by the engines.
// *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandomizer returns a Randomizer seeded from the runtime's random source.
func NewRandomizer() Randomizer {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRandomizer returns a deterministic Randomizer.
func NewSeededRandomizer(seed uint64) Randomizer {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type options struct {
	rnd             Randomizer
	clock           clockwork.Clock
	notify          Notifier
	onComplete      func()
	transitionDelay time.Duration
	swipeThreshold  float64
	pairLimit       int
	optionCount     int
}

// Option configures an engine.
type Option func(*options)

// WithRandomizer sets the randomness source.
func WithRandomizer(r Randomizer) Option {
	return func(o *options) {
		if r != nil {
			o.rnd = r
		}
	}
}

// WithClock sets the clock that schedules flashcard transitions.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithNotifier sets the receiver of engine notifications.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notify = n
	}
}

// WithCompletion sets the callback invoked when a session completes.
func WithCompletion(fn func()) Option {
	return func(o *options) {
		o.onComplete = fn
	}
}

// WithTransitionDelay sets the delay between a flashcard Next/Previous
// request and its commit. Zero or negative values keep the default.
func WithTransitionDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.transitionDelay = d
		}
	}
}

// WithSwipeThreshold sets the minimum horizontal displacement of a swipe.
func WithSwipeThreshold(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.swipeThreshold = px
		}
	}
}

// WithPairLimit caps the number of vocabulary records a matching game uses.
func WithPairLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pairLimit = n
		}
	}
}

// WithOptionCount sets the number of answer options per quiz question,
// correct answer included.
func WithOptionCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.optionCount = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		transitionDelay: DefaultTransitionDelay,
		swipeThreshold:  DefaultSwipeThreshold,
		pairLimit:       DefaultPairLimit,
		optionCount:     DefaultOptionCount,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = NewRandomizer()
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	return o
}

func (o *options) emit(kind NotificationKind, message string) {
	if o.notify != nil {
		o.notify(Notification{Kind: kind, Message: message})
	}
}

func (o *options) complete() {
	if o.onComplete != nil {
		o.onComplete()
	}
}

func shuffle[T any](rnd Randomizer, s []T) {
	rnd.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
