package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"bid-match/internal/domain/skillname"
)

// QueueUpdatedEvent announces a review-queue change to connected clients.
// Action is one of detected, approved, rejected.
type QueueUpdatedEvent struct {
	Type      string `json:"type"`
	SkillName string `json:"skill_name"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

const (
	ActionDetected = "detected"
	ActionApproved = "approved"
	ActionRejected = "rejected"
)

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyQueueUpdated broadcasts a queue change. A nil default hub (tests,
// CLI tooling) makes this a no-op.
func NotifyQueueUpdated(skillName, action string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	skillName = skillname.Normalize(skillName)
	if skillName == "" {
		return
	}

	evt := QueueUpdatedEvent{
		Type:      "review_queue_updated",
		SkillName: skillName,
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
