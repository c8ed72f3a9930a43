package usecase

const (
	QueueActionDetected = "detected"
	QueueActionApproved = "approved"
	QueueActionRejected = "rejected"
)

// QueueNotifier pushes review-queue change events to whoever is listening,
// typically the websocket hub. Implementations must never block.
type QueueNotifier interface {
	QueueUpdated(skillName, action string)
}

type QueueNotifierFunc func(skillName, action string)

func (f QueueNotifierFunc) QueueUpdated(skillName, action string) {
	f(skillName, action)
}

type noopNotifier struct{}

func (noopNotifier) QueueUpdated(string, string) {}
