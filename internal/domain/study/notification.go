package study

// NotificationKind identifies an engine event worth surfacing to the learner.
type NotificationKind string

// Notification kinds.
const (
	NotifyMatchFound NotificationKind = "match-found"
	NotifyIncorrect  NotificationKind = "incorrect"
	NotifyCorrect    NotificationKind = "correct"
	NotifyCompleted  NotificationKind = "completed"
)

// Notification is a user-facing message emitted by an engine.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// Notifier receives notifications synchronously, on the goroutine that
// caused them.
type Notifier func(Notification)
